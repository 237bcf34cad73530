package api

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/fsdevblog/founderpass/internal/domain"
	"github.com/fsdevblog/founderpass/internal/logger"
	"github.com/fsdevblog/founderpass/internal/transport/api/mocks"
	"github.com/fsdevblog/founderpass/internal/transport/api/testutils"
	"github.com/fsdevblog/founderpass/internal/transport/api/tokens"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type ProfileHandlerTestSuite struct {
	suite.Suite
	mockCtrl           *gomock.Controller
	router             *gin.Engine
	mockProfileService *mocks.MockProfileServicer
	jwtSecret          []byte
	userID             string
	userToken          string
}

func TestProfileHandlerSuite(t *testing.T) {
	suite.Run(t, new(ProfileHandlerTestSuite))
}

func (s *ProfileHandlerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockProfileService = mocks.NewMockProfileServicer(s.mockCtrl)
	s.jwtSecret = []byte("super secret key")
	s.userID = "7e2a4f4e-8c67-4f0f-9a9c-0b8f6f9a1d33"

	token, tokenErr := tokens.GenerateIdentityJWT(s.userID, time.Hour, s.jwtSecret)
	s.Require().NoError(tokenErr)
	s.userToken = token

	s.router = New(RouterArgs{
		Logger:         logger.New(io.Discard),
		ProfileService: s.mockProfileService,
		Currency:       "INR",
		JWTSecretKey:   s.jwtSecret,
	})
}

func (s *ProfileHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *ProfileHandlerTestSuite) getEntitlement(opts ...func(*testutils.RequestOptions)) *http.Response {
	return testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    RouteGroup + UserEntitlementRoute,
	}, opts...)
}

func (s *ProfileHandlerTestSuite) TestEntitlementGranted() {
	boughtAt := time.Now().UTC().Truncate(time.Second)
	s.mockProfileService.EXPECT().
		GetByID(gomock.Any(), s.userID).
		Return(&domain.Profile{
			ID:             s.userID,
			Email:          "founder@example.com",
			WaitlistStatus: domain.WaitlistStatusApproved,
			BetaAccess:     true,
			BoughtAt:       &boughtAt,
		}, nil)

	resp := s.getEntitlement(testutils.WithBearer(s.userToken))
	defer func() { _ = resp.Body.Close() }()

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var body EntitlementResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.True(body.BetaAccess)
	s.Require().NotNil(body.BoughtAt)
	s.True(boughtAt.Equal(*body.BoughtAt))
	s.Equal(domain.WaitlistStatusApproved, body.WaitlistStatus)
}

func (s *ProfileHandlerTestSuite) TestEntitlementNotBought() {
	s.mockProfileService.EXPECT().
		GetByID(gomock.Any(), s.userID).
		Return(&domain.Profile{
			ID:             s.userID,
			WaitlistStatus: domain.WaitlistStatusPending,
		}, nil)

	resp := s.getEntitlement(testutils.WithBearer(s.userToken))
	defer func() { _ = resp.Body.Close() }()

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var body EntitlementResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.False(body.BetaAccess)
	s.Nil(body.BoughtAt)
}

func (s *ProfileHandlerTestSuite) TestEntitlementUnknownProfile() {
	s.mockProfileService.EXPECT().
		GetByID(gomock.Any(), s.userID).
		Return(nil, domain.ErrRecordNotFound)

	resp := s.getEntitlement(testutils.WithBearer(s.userToken))
	defer func() { _ = resp.Body.Close() }()

	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *ProfileHandlerTestSuite) TestEntitlementAuth() {
	s.Run("no token", func() {
		resp := s.getEntitlement()
		defer func() { _ = resp.Body.Close() }()
		s.Equal(http.StatusUnauthorized, resp.StatusCode)
	})

	s.Run("expired token", func() {
		expired, tokenErr := tokens.GenerateIdentityJWT(s.userID, -time.Hour, s.jwtSecret)
		s.Require().NoError(tokenErr)

		resp := s.getEntitlement(testutils.WithBearer(expired))
		defer func() { _ = resp.Body.Close() }()
		s.Require().Equal(http.StatusUnauthorized, resp.StatusCode)

		// тело 401 - один JSON объект: к ответу auth middleware никто не дописывает второй.
		raw, readErr := io.ReadAll(resp.Body)
		s.Require().NoError(readErr)
		var body map[string]string
		s.Require().NoError(json.Unmarshal(raw, &body))
		s.Equal("Unauthorized", body["error"])
	})

	s.Run("foreign signing key", func() {
		foreign, tokenErr := tokens.GenerateIdentityJWT(s.userID, time.Hour, []byte("another key"))
		s.Require().NoError(tokenErr)

		resp := s.getEntitlement(testutils.WithBearer(foreign))
		defer func() { _ = resp.Body.Close() }()
		s.Equal(http.StatusUnauthorized, resp.StatusCode)
	})
}
