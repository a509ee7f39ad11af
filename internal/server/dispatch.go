package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/practice-sem-2/messenger-service/internal/models"
	usecase "github.com/practice-sem-2/messenger-service/internal/usecases"
	"github.com/sirupsen/logrus"
)

type GroupService interface {
	CreateGroup(ctx context.Context, caller uuid.UUID, newGroup models.NewGroup) error
	LeaveGroup(ctx context.Context, caller, groupID uuid.UUID) error
	RemoveGroup(ctx context.Context, caller, groupID uuid.UUID) error
	SendGroupData(ctx context.Context, caller, groupID uuid.UUID) error
	SearchNoMyGroup(ctx context.Context, caller uuid.UUID, namePart string) error
	CheckGroupNamePart(ctx context.Context, caller uuid.UUID, name string) error
}

type MessageService interface {
	SendMessage(ctx context.Context, caller uuid.UUID, send models.MessageSend) error
	EditMessage(ctx context.Context, caller uuid.UUID, edit models.MessageEdit) error
}

const unknownLabel = "unknown"

type invocationHandler func(ctx context.Context, caller uuid.UUID, args arguments) error

type route struct {
	hub    models.Hub
	target string
}

// Dispatcher routes invocation frames to usecases and turns their outcome
// into completion frames.
type Dispatcher struct {
	routes  map[route]invocationHandler
	limiter Limiter
	metrics *Metrics
	logger  logrus.FieldLogger
}

// NewDispatcher builds the routing table. A nil limiter disables rate
// limiting.
func NewDispatcher(groups GroupService, messages MessageService, limiter Limiter, metrics *Metrics, logger logrus.FieldLogger) *Dispatcher {
	d := &Dispatcher{
		routes:  make(map[route]invocationHandler),
		limiter: limiter,
		metrics: metrics,
		logger:  logger,
	}

	d.handle(models.HubGroup, "CreateGroup", func(ctx context.Context, caller uuid.UUID, args arguments) error {
		var newGroup models.NewGroup
		if err := args.decode(0, &newGroup); err != nil {
			return err
		}
		return groups.CreateGroup(ctx, caller, newGroup)
	})
	d.handle(models.HubGroup, "LeaveGroup", withGroupID(groups.LeaveGroup))
	d.handle(models.HubGroup, "RemoveGroup", withGroupID(groups.RemoveGroup))
	d.handle(models.HubGroup, "SendGroupData", withGroupID(groups.SendGroupData))
	d.handle(models.HubGroup, "SearchNoMyGroup", withString(groups.SearchNoMyGroup))
	d.handle(models.HubGroup, "CheckGroupNamePart", withString(groups.CheckGroupNamePart))

	d.handle(models.HubMessenger, "SendMessage", func(ctx context.Context, caller uuid.UUID, args arguments) error {
		var send models.MessageSend
		if err := args.decode(0, &send); err != nil {
			return err
		}
		return messages.SendMessage(ctx, caller, send)
	})
	d.handle(models.HubMessenger, "EditMessage", func(ctx context.Context, caller uuid.UUID, args arguments) error {
		var edit models.MessageEdit
		if err := args.decode(0, &edit); err != nil {
			return err
		}
		return messages.EditMessage(ctx, caller, edit)
	})

	return d
}

func (d *Dispatcher) handle(hub models.Hub, target string, h invocationHandler) {
	d.routes[route{hub: hub, target: target}] = h
}

func withGroupID(op func(ctx context.Context, caller, groupID uuid.UUID) error) invocationHandler {
	return func(ctx context.Context, caller uuid.UUID, args arguments) error {
		groupID, err := args.uuid(0)
		if err != nil {
			return err
		}
		return op(ctx, caller, groupID)
	}
}

func withString(op func(ctx context.Context, caller uuid.UUID, s string) error) invocationHandler {
	return func(ctx context.Context, caller uuid.UUID, args arguments) error {
		s, err := args.string(0)
		if err != nil {
			return err
		}
		return op(ctx, caller, s)
	}
}

// Handle processes one inbound frame and returns the completion to send
// back, or nil when nothing is owed to the client.
func (d *Dispatcher) Handle(ctx context.Context, c *Client, payload []byte) []byte {
	var frame invocationFrame
	if err := json.Unmarshal(payload, &frame); err != nil {
		d.logger.
			WithError(err).
			WithField("user_id", c.userID).
			Warning("can't decode frame")
		return nil
	}

	if frame.Type != FrameInvocation {
		return nil
	}

	complete := func(code string) []byte {
		if frame.InvocationID == "" {
			return nil
		}
		return encodeCompletion(frame.InvocationID, code)
	}

	logger := d.logger.
		WithField("user_id", c.userID).
		WithField("hub", frame.Hub).
		WithField("target", frame.Target)

	handler, known := d.routes[route{hub: frame.Hub, target: frame.Target}]
	// metric labels only carry routed names
	hub, target := frame.Hub, frame.Target
	if !known {
		hub, target = unknownLabel, unknownLabel
	}

	if d.limiter != nil {
		allowed, err := d.limiter.Allow(ctx, c.userID.String())
		if err != nil {
			logger.WithError(err).Warning("rate limiter is unavailable")
		} else if !allowed {
			logger.Info("invocation rate limited")
			d.metrics.Invocation(hub, target, "rate_limited", 0)
			return complete(CompletionRateLimited)
		}
	}

	start := time.Now()
	var err error
	if known {
		err = handler(ctx, c.userID, frame.Arguments)
	} else {
		err = fmt.Errorf("%w: unknown target %s on hub %s", usecase.ErrInvalidRequest, frame.Target, frame.Hub)
	}

	kind := usecase.Kind(err)
	result := "ok"
	if kind != usecase.KindNone {
		result = string(kind)
	}
	d.metrics.Invocation(hub, target, result, time.Since(start).Seconds())

	if err != nil {
		entry := logger.
			WithField("error_kind", kind).
			WithError(err)
		if kind == usecase.KindPersistenceFailure {
			entry.Error("invocation failed")
		} else {
			entry.Warning("invocation failed")
		}
		return complete(CompletionFailed)
	}

	return complete("")
}
