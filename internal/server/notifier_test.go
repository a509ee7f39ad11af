package server

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/practice-sem-2/messenger-service/internal/models"
	"github.com/practice-sem-2/messenger-service/internal/presence"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"
)

type NotifierTestSuite struct {
	suite.Suite
	presence *presence.Registry
	metrics  *Metrics
	hub      *Hub
	notifier *Notifier
}

func (s *NotifierTestSuite) SetupTest() {
	logger, _ := test.NewNullLogger()
	s.presence = presence.NewRegistry()
	s.metrics = NewMetrics(prometheus.NewRegistry())
	s.hub = NewHub(s.metrics, logger)
	s.notifier = NewNotifier(s.hub, s.presence, models.HubGroup, s.metrics, logger)
}

func (s *NotifierTestSuite) connect(userID uuid.UUID, connectionID string) *Client {
	c := newClient(nil, connectionID, userID)
	s.hub.Register(c)
	s.presence.Register(userID, connectionID)
	return c
}

func (s *NotifierTestSuite) received(c *Client) []eventFrame {
	frames := make([]eventFrame, 0)
	for {
		select {
		case payload := <-c.send:
			var f eventFrame
			s.Require().NoError(json.Unmarshal(payload, &f))
			frames = append(frames, f)
		default:
			return frames
		}
	}
}

func (s *NotifierTestSuite) TestToUserReachesEveryLiveConnection() {
	ann, bob := uuid.New(), uuid.New()
	tab1 := s.connect(ann, "ann-1")
	tab2 := s.connect(ann, "ann-2")
	other := s.connect(bob, "bob-1")

	s.notifier.ToUser(context.Background(), ann, models.NewEvent(models.TargetReceiveGroupResultType, models.GroupResultSuccessLeft))

	for _, c := range []*Client{tab1, tab2} {
		frames := s.received(c)
		s.Require().Len(frames, 1)
		s.Equal(FrameInvocation, frames[0].Type)
		s.Equal(models.HubGroup, frames[0].Hub)
		s.Equal(models.TargetReceiveGroupResultType, frames[0].Target)
		s.Equal([]interface{}{"successLeft"}, frames[0].Arguments)
	}
	s.Empty(s.received(other))
	s.Equal(2.0, testutil.ToFloat64(s.metrics.events))
}

func (s *NotifierTestSuite) TestToChannel() {
	ann, bob, eve := uuid.New(), uuid.New(), uuid.New()
	a := s.connect(ann, "ann-1")
	b := s.connect(bob, "bob-1")
	e := s.connect(eve, "eve-1")

	s.presence.AddToChannel("g1", "ann-1", "bob-1")
	s.notifier.ToChannel(context.Background(), "g1", models.NewEvent(models.TargetReceiveRemovedGroup, "g1", models.GroupRemovedText))

	frames := s.received(a)
	s.Require().Len(frames, 1)
	s.Equal("ReceiveRomevedGroup", frames[0].Target)
	s.Len(s.received(b), 1)
	s.Empty(s.received(e))
}

func (s *NotifierTestSuite) TestToUserOnHub() {
	ann := uuid.New()
	a := s.connect(ann, "ann-1")

	s.notifier.ToUserOnHub(context.Background(), models.HubApplication, ann, models.NewEvent(models.TargetReduceMyApplicationsCount, 1))

	frames := s.received(a)
	s.Require().Len(frames, 1)
	s.Equal(models.HubApplication, frames[0].Hub)
	s.Equal([]interface{}{1.0}, frames[0].Arguments)
}

func (s *NotifierTestSuite) TestWithHub() {
	ann := uuid.New()
	a := s.connect(ann, "ann-1")

	s.notifier.WithHub(models.HubMessenger).ToUser(context.Background(), ann, models.NewEvent(models.TargetReceiveMessage))

	frames := s.received(a)
	s.Require().Len(frames, 1)
	s.Equal(models.HubMessenger, frames[0].Hub)
	s.Equal([]interface{}{}, frames[0].Arguments)
}

func (s *NotifierTestSuite) TestSkipsConnectionsWithoutClient() {
	ann := uuid.New()
	s.presence.Register(ann, "elsewhere")

	s.NotPanics(func() {
		s.notifier.ToUser(context.Background(), ann, models.NewEvent(models.TargetReceiveMessage))
	})
	s.Equal(0, testutil.CollectAndCount(s.metrics.events))
}

func (s *NotifierTestSuite) TestSkipsUnregisteredClient() {
	ann := uuid.New()
	c := s.connect(ann, "ann-1")
	s.hub.Unregister(c)

	s.notifier.ToUser(context.Background(), ann, models.NewEvent(models.TargetReceiveMessage))
	s.Equal(0, s.hub.ClientCount())
}

func (s *NotifierTestSuite) TestSlowClientIsDropped() {
	ann := uuid.New()
	c := s.connect(ann, "ann-1")
	for i := 0; i < sendBufferSize; i++ {
		s.Require().True(s.hub.Send(c.id, []byte("{}")))
	}

	s.False(s.hub.Send(c.id, []byte("{}")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.slowClients))
}

func TestNotifier(t *testing.T) {
	suite.Run(t, new(NotifierTestSuite))
}
