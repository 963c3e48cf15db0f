package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"jobboard/internal/common"
	"jobboard/internal/models"
	"jobboard/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type UserServiceTestSuite struct {
	suite.Suite
	userRepo    *MockUserRepository
	profileRepo *MockProfileRepository
	companyRepo *MockCompanyRepository
	storage     *MockStorageService
	service     UserService
	ctx         context.Context
	identity    *common.Identity
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.userRepo = &MockUserRepository{}
	suite.profileRepo = &MockProfileRepository{}
	suite.companyRepo = &MockCompanyRepository{}
	suite.storage = &MockStorageService{}
	suite.service = NewUserService(suite.userRepo, suite.profileRepo, suite.companyRepo, suite.storage, zap.NewNop())
	suite.ctx = context.Background()
	suite.identity = &common.Identity{UserID: uuid.New(), TenantID: uuid.New(), Email: "ana@x.io", Role: models.RoleStudent}
}

func (suite *UserServiceTestSuite) TearDownTest() {
	suite.userRepo.AssertExpectations(suite.T())
	suite.profileRepo.AssertExpectations(suite.T())
	suite.companyRepo.AssertExpectations(suite.T())
	suite.storage.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (suite *UserServiceTestSuite) TestGetProfile_StudentWithoutCompany() {
	user := &models.User{ID: suite.identity.UserID, TenantID: suite.identity.TenantID, Name: "Ana", Email: "ana@x.io", Role: models.RoleStudent}
	profile := &models.Profile{ID: uuid.New(), UserID: user.ID, Skills: []string{"go"}}
	suite.userRepo.On("GetByID", suite.ctx, user.ID).Return(user, nil).Once()
	suite.profileRepo.On("GetByUserID", suite.ctx, user.ID).Return(profile, nil).Once()
	suite.companyRepo.On("GetByUserID", suite.ctx, user.ID).Return(nil, repositories.ErrNotFound).Once()

	view, err := suite.service.GetProfile(suite.ctx, user.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), profile, view.Profile)
	assert.Nil(suite.T(), view.Company)
}

func (suite *UserServiceTestSuite) TestUpdateProfile_RejectsSemesterOutOfRange() {
	semester := 13
	_, err := suite.service.UpdateProfile(suite.ctx, suite.identity.UserID, &UpdateProfileRequest{Semester: &semester})
	assert.ErrorIs(suite.T(), err, common.ValidationError(""))
}

func (suite *UserServiceTestSuite) TestUpdateProfile_CreatesMissingProfile() {
	userID := suite.identity.UserID
	course := "Computer Science"
	skills := []string{"go", "sql"}
	user := &models.User{ID: userID, Name: "Ana", Role: models.RoleStudent}

	suite.profileRepo.On("GetByUserID", suite.ctx, userID).Return(nil, repositories.ErrNotFound).Once()
	suite.profileRepo.On("Upsert", suite.ctx, mock.MatchedBy(func(p *models.Profile) bool {
		return p.UserID == userID && *p.Course == course && len(p.Skills) == 2
	})).Return(nil).Once()
	suite.userRepo.On("GetByID", suite.ctx, userID).Return(user, nil).Once()
	suite.profileRepo.On("GetByUserID", suite.ctx, userID).Return(&models.Profile{UserID: userID, Course: &course, Skills: skills}, nil).Once()
	suite.companyRepo.On("GetByUserID", suite.ctx, userID).Return(nil, repositories.ErrNotFound).Once()

	view, err := suite.service.UpdateProfile(suite.ctx, userID, &UpdateProfileRequest{Course: &course, Skills: &skills})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), course, *view.Profile.Course)
}

func (suite *UserServiceTestSuite) TestUploadResume_StoresUnderTenantAndUser() {
	data := []byte("%PDF-1.4 test")
	reader := bytes.NewReader(data)
	key := suite.identity.TenantID.String() + "/" + suite.identity.UserID.String() + "/resume.pdf"

	suite.profileRepo.On("GetByUserID", suite.ctx, suite.identity.UserID).Return(&models.Profile{UserID: suite.identity.UserID}, nil).Once()
	suite.storage.On("Upload", suite.ctx, key, reader, int64(len(data)), ResumeContentType).Return(nil).Once()
	suite.profileRepo.On("SetResumeKey", suite.ctx, suite.identity.UserID, key).Return(nil).Once()

	err := suite.service.UploadResume(suite.ctx, suite.identity, reader, int64(len(data)), ResumeContentType)
	assert.NoError(suite.T(), err)
}

func (suite *UserServiceTestSuite) TestUploadResume_RemovesObjectWhenFirstUploadNotRecorded() {
	data := []byte("%PDF-1.4 test")
	reader := bytes.NewReader(data)
	key := suite.identity.TenantID.String() + "/" + suite.identity.UserID.String() + "/resume.pdf"
	dbErr := errors.New("connection reset")

	suite.profileRepo.On("GetByUserID", suite.ctx, suite.identity.UserID).Return(&models.Profile{UserID: suite.identity.UserID}, nil).Once()
	suite.storage.On("Upload", suite.ctx, key, reader, int64(len(data)), ResumeContentType).Return(nil).Once()
	suite.profileRepo.On("SetResumeKey", suite.ctx, suite.identity.UserID, key).Return(dbErr).Once()
	suite.storage.On("Delete", suite.ctx, key).Return(nil).Once()

	err := suite.service.UploadResume(suite.ctx, suite.identity, reader, int64(len(data)), ResumeContentType)
	assert.ErrorIs(suite.T(), err, dbErr)
}

func (suite *UserServiceTestSuite) TestUploadResume_KeepsReplacedObjectWhenNotRecorded() {
	data := []byte("%PDF-1.4 test")
	reader := bytes.NewReader(data)
	key := suite.identity.TenantID.String() + "/" + suite.identity.UserID.String() + "/resume.pdf"
	dbErr := errors.New("connection reset")

	suite.profileRepo.On("GetByUserID", suite.ctx, suite.identity.UserID).Return(&models.Profile{UserID: suite.identity.UserID, ResumeKey: &key}, nil).Once()
	suite.storage.On("Upload", suite.ctx, key, reader, int64(len(data)), ResumeContentType).Return(nil).Once()
	suite.profileRepo.On("SetResumeKey", suite.ctx, suite.identity.UserID, key).Return(dbErr).Once()

	err := suite.service.UploadResume(suite.ctx, suite.identity, reader, int64(len(data)), ResumeContentType)
	assert.ErrorIs(suite.T(), err, dbErr)
	suite.storage.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUploadResume_Rejections() {
	err := suite.service.UploadResume(suite.ctx, suite.identity, bytes.NewReader(nil), 10, "image/png")
	assert.ErrorIs(suite.T(), err, common.ValidationError(""))

	err = suite.service.UploadResume(suite.ctx, suite.identity, bytes.NewReader(nil), MaxResumeSize+1, ResumeContentType)
	assert.ErrorIs(suite.T(), err, common.ValidationError(""))
}

func (suite *UserServiceTestSuite) TestResumeURL_NoResume() {
	suite.profileRepo.On("GetByUserID", suite.ctx, suite.identity.UserID).Return(&models.Profile{UserID: suite.identity.UserID}, nil).Once()

	_, err := suite.service.ResumeURL(suite.ctx, suite.identity)
	assert.ErrorIs(suite.T(), err, common.NotFoundError(""))
}

func (suite *UserServiceTestSuite) TestResumeURL_Presigned() {
	key := "t/u/resume.pdf"
	suite.profileRepo.On("GetByUserID", suite.ctx, suite.identity.UserID).Return(&models.Profile{ResumeKey: &key}, nil).Once()
	suite.storage.On("PresignedURL", suite.ctx, key, resumeURLExpiry).Return("https://minio/resume", nil).Once()

	url, err := suite.service.ResumeURL(suite.ctx, suite.identity)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "https://minio/resume", url)
}

func (suite *UserServiceTestSuite) TestGetByID_OtherTenantIsNotFound() {
	other := &models.User{ID: uuid.New(), TenantID: uuid.New()}
	suite.userRepo.On("GetByID", suite.ctx, other.ID).Return(other, nil).Once()

	_, err := suite.service.GetByID(suite.ctx, suite.identity.TenantID, other.ID)
	assert.ErrorIs(suite.T(), err, common.NotFoundError(""))
}

func (suite *UserServiceTestSuite) TestUpdate_TenantAdminCannotGrantGlobalAdmin() {
	admin := &common.Identity{UserID: uuid.New(), TenantID: suite.identity.TenantID, Role: models.RoleTenantAdmin}
	target := &models.User{ID: uuid.New(), TenantID: admin.TenantID, Role: models.RoleStudent}
	role := models.RoleGlobalAdmin
	suite.userRepo.On("GetByID", suite.ctx, target.ID).Return(target, nil).Once()

	_, err := suite.service.Update(suite.ctx, admin, target.ID, &UpdateUserRequest{Role: &role})
	assert.ErrorIs(suite.T(), err, common.ErrInsufficientPermissions)
}

func (suite *UserServiceTestSuite) TestUpdate_Deactivate() {
	admin := &common.Identity{UserID: uuid.New(), TenantID: suite.identity.TenantID, Role: models.RoleTenantAdmin}
	target := &models.User{ID: uuid.New(), TenantID: admin.TenantID, Role: models.RoleStudent, IsActive: true}
	inactive := false
	suite.userRepo.On("GetByID", suite.ctx, target.ID).Return(target, nil).Once()
	suite.userRepo.On("Update", suite.ctx, target).Return(nil).Once()

	user, err := suite.service.Update(suite.ctx, admin, target.ID, &UpdateUserRequest{IsActive: &inactive})
	require.NoError(suite.T(), err)
	assert.False(suite.T(), user.IsActive)
}
