package storage

import (
	"time"

	"github.com/Shopify/sarama"
	"github.com/google/uuid"
	"github.com/practice-sem-2/messenger-service/internal/models"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	UpdateGroupCreated = "group_created"
	UpdateMemberLeft   = "member_left"
	UpdateGroupRemoved = "group_removed"
	UpdateMessageSent  = "message_sent"
)

type UpdatesStorage struct {
	cfg      *UpdatesStoreConfig
	producer sarama.SyncProducer
}

type UpdatesStoreConfig struct {
	UpdatesTopic string
}

func NewUpdatesStore(p sarama.SyncProducer, cfg *UpdatesStoreConfig) *UpdatesStorage {
	return &UpdatesStorage{
		producer: p,
		cfg:      cfg,
	}
}

func (s *UpdatesStorage) putUpdate(topic, key string, event *structpb.Struct) error {
	bytes, err := proto.Marshal(event)
	if err != nil {
		return err
	}

	_, _, err = s.producer.SendMessage(&sarama.ProducerMessage{
		Topic:     topic,
		Key:       sarama.StringEncoder(key),
		Value:     sarama.ByteEncoder(bytes),
		Timestamp: time.Time{},
	})

	return err
}

func metaToMap(kind string, meta models.UpdateMeta) map[string]interface{} {
	audience := make([]interface{}, len(meta.Audience))
	for i, a := range meta.Audience {
		audience[i] = a
	}
	return map[string]interface{}{
		"kind":      kind,
		"timestamp": meta.Timestamp.UTC().Unix(),
		"audience":  audience,
	}
}

func uuidsToList(ids []uuid.UUID) []interface{} {
	list := make([]interface{}, len(ids))
	for i, id := range ids {
		list[i] = id.String()
	}
	return list
}

func (s *UpdatesStorage) groupCreatedToProtobuf(u *models.GroupCreated) (*structpb.Struct, error) {
	m := metaToMap(UpdateGroupCreated, u.UpdateMeta)
	m["group_id"] = u.GroupID.String()
	m["type"] = string(u.Type)
	m["creator_id"] = u.CreatorID.String()
	m["invited"] = uuidsToList(u.Invited)
	return structpb.NewStruct(m)
}

func (s *UpdatesStorage) memberLeftToProtobuf(u *models.MemberLeft) (*structpb.Struct, error) {
	m := metaToMap(UpdateMemberLeft, u.UpdateMeta)
	m["group_id"] = u.GroupID.String()
	m["user_id"] = u.UserID.String()
	return structpb.NewStruct(m)
}

func (s *UpdatesStorage) groupRemovedToProtobuf(u *models.GroupRemoved) (*structpb.Struct, error) {
	m := metaToMap(UpdateGroupRemoved, u.UpdateMeta)
	m["group_id"] = u.GroupID.String()
	m["removed_by"] = u.RemovedBy.String()
	return structpb.NewStruct(m)
}

func (s *UpdatesStorage) messageSentToProtobuf(u *models.MessageSent) (*structpb.Struct, error) {
	m := metaToMap(UpdateMessageSent, u.UpdateMeta)
	m["message_id"] = u.MessageID.String()
	m["group_id"] = u.GroupID.String()
	m["from_user"] = u.FromUser.String()
	m["text"] = u.Text
	return structpb.NewStruct(m)
}

func (s *UpdatesStorage) GroupCreated(u *models.GroupCreated) error {
	update, err := s.groupCreatedToProtobuf(u)
	if err != nil {
		return err
	}
	return s.putUpdate(s.cfg.UpdatesTopic, u.GroupID.String(), update)
}

func (s *UpdatesStorage) MemberLeft(u *models.MemberLeft) error {
	update, err := s.memberLeftToProtobuf(u)
	if err != nil {
		return err
	}
	return s.putUpdate(s.cfg.UpdatesTopic, u.GroupID.String(), update)
}

func (s *UpdatesStorage) GroupRemoved(u *models.GroupRemoved) error {
	update, err := s.groupRemovedToProtobuf(u)
	if err != nil {
		return err
	}
	return s.putUpdate(s.cfg.UpdatesTopic, u.GroupID.String(), update)
}

func (s *UpdatesStorage) MessageSent(u *models.MessageSent) error {
	update, err := s.messageSentToProtobuf(u)
	if err != nil {
		return err
	}
	return s.putUpdate(s.cfg.UpdatesTopic, u.GroupID.String(), update)
}

// NopUpdatesStore drops every update. Used when no broker is configured.
type NopUpdatesStore struct{}

func (NopUpdatesStore) GroupCreated(*models.GroupCreated) error { return nil }
func (NopUpdatesStore) MemberLeft(*models.MemberLeft) error     { return nil }
func (NopUpdatesStore) GroupRemoved(*models.GroupRemoved) error { return nil }
func (NopUpdatesStore) MessageSent(*models.MessageSent) error   { return nil }
