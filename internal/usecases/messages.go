package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/practice-sem-2/messenger-service/internal/models"
	storage "github.com/practice-sem-2/messenger-service/internal/storages"
	"github.com/sirupsen/logrus"
)

type MessagesUsecase struct {
	registry storage.Registry
	notifier Notifier
	logger   logrus.FieldLogger
	now      func() time.Time
}

func NewMessagesUsecase(r storage.Registry, n Notifier, logger logrus.FieldLogger) *MessagesUsecase {
	return &MessagesUsecase{
		registry: r,
		notifier: n,
		logger:   logger,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// activeMember fails unless userID holds a non-left membership in groupID.
func activeMember(ctx context.Context, groups storage.GroupsStore, groupID, userID uuid.UUID) error {
	m, err := groups.GetMembership(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if m.IsLeaved {
		return ErrForbidden
	}
	return nil
}

func (u *MessagesUsecase) SendMessage(ctx context.Context, caller uuid.UUID, send models.MessageSend) error {
	if err := validateStruct(&send); err != nil {
		return err
	}

	msg := models.Message{
		MessageID: uuid.New(),
		GroupID:   send.GroupID,
		UserID:    caller,
		Value:     send.Value,
		SendDate:  u.now(),
	}

	var (
		author   *models.User
		audience []string
	)

	err := u.registry.Atomic(ctx, func(r storage.Registry) error {
		groups := r.GetGroupsStore()
		if err := activeMember(ctx, groups, send.GroupID, caller); err != nil {
			return err
		}

		members, err := groups.GetGroupMembers(ctx, send.GroupID)
		if err != nil {
			return err
		}
		audience = activeAudience(members)

		if author, err = r.GetUsersStore().GetUser(ctx, caller); err != nil {
			return err
		}
		return r.GetMessagesStore().PutMessage(ctx, &msg)
	})

	if err != nil {
		return storageError(err)
	}

	u.notifier.ToChannel(ctx, GroupChannel(msg.GroupID),
		models.NewEvent(models.TargetReceiveMessage, messageModel(&msg, simpleUser(author))))

	err = u.registry.GetUpdatesStore().MessageSent(&models.MessageSent{
		UpdateMeta: models.UpdateMeta{
			Timestamp: msg.SendDate,
			Audience:  audience,
		},
		MessageID: msg.MessageID,
		GroupID:   msg.GroupID,
		FromUser:  caller,
		Text:      msg.Value,
	})
	if err != nil {
		u.logger.WithError(err).WithField("update", "message_sent").Warn("failed to publish update")
	}
	return nil
}

// EditMessage replaces the text of the caller's own message. The previous
// text is kept in OldValue.
func (u *MessagesUsecase) EditMessage(ctx context.Context, caller uuid.UUID, edit models.MessageEdit) error {
	if err := validateStruct(&edit); err != nil {
		return err
	}

	var (
		msg    *models.Message
		author *models.User
	)

	err := u.registry.Atomic(ctx, func(r storage.Registry) error {
		messages := r.GetMessagesStore()

		var err error
		if msg, err = messages.GetMessage(ctx, edit.MessageID); err != nil {
			return err
		}
		if msg.UserID != caller {
			return ErrForbidden
		}
		if err = activeMember(ctx, r.GetGroupsStore(), msg.GroupID, caller); err != nil {
			return err
		}

		old := msg.Value
		now := u.now()
		msg.OldValue = &old
		msg.Value = edit.Value
		msg.EditDate = &now

		if err = messages.EditMessage(ctx, msg); err != nil {
			return err
		}

		author, err = r.GetUsersStore().GetUser(ctx, caller)
		return err
	})

	if err != nil {
		return storageError(err)
	}

	u.notifier.ToChannel(ctx, GroupChannel(msg.GroupID),
		models.NewEvent(models.TargetReceiveEditedMessage, messageModel(msg, simpleUser(author))))
	return nil
}
