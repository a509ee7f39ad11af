package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/practice-sem-2/messenger-service/internal/models"
	storage "github.com/practice-sem-2/messenger-service/internal/storages"
	"github.com/sirupsen/logrus"
)

const (
	GroupDataMessagesCount = 50
	SearchGroupsLimit      = 50
)

// GroupsUsecase coordinates group membership. Every operation commits its
// store changes before any event is sent.
type GroupsUsecase struct {
	registry storage.Registry
	router   ChannelRouter
	notifier Notifier
	images   ImageStore
	logger   logrus.FieldLogger
	now      func() time.Time
}

// NewGroupsUsecase builds the coordinator. images may be nil when image
// storage is not configured.
func NewGroupsUsecase(r storage.Registry, router ChannelRouter, n Notifier, images ImageStore, logger logrus.FieldLogger) *GroupsUsecase {
	return &GroupsUsecase{
		registry: r,
		router:   router,
		notifier: n,
		images:   images,
		logger:   logger,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (u *GroupsUsecase) CreateGroup(ctx context.Context, caller uuid.UUID, newGroup models.NewGroup) error {
	groupType, err := ValidateNewGroup(caller, &newGroup)
	if err != nil {
		return err
	}

	now := u.now()
	group := models.Group{
		GroupID:      uuid.New(),
		Type:         groupType,
		CreationDate: now,
	}
	if groupType != models.GroupTypeChat {
		name := newGroup.Name
		group.Name = &name
	}
	if newGroup.HaveImage {
		imageID := uuid.New()
		group.ImageID = &imageID
	}

	invitations := make([]models.Invitation, 0, len(newGroup.Invitations))
	seen := make(map[uuid.UUID]bool, len(newGroup.Invitations))
	for _, inv := range newGroup.Invitations {
		if seen[inv.InvitedUser.ID] {
			continue
		}
		seen[inv.InvitedUser.ID] = true
		invitations = append(invitations, models.Invitation{
			GroupID:       group.GroupID,
			InvitedUserID: inv.InvitedUser.ID,
			InviterID:     caller,
			Value:         inv.Value,
			SendDate:      now,
		})
	}

	var (
		users       map[uuid.UUID]*models.User
		connections []models.Connection
	)

	err = u.registry.Atomic(ctx, func(r storage.Registry) error {
		groups := r.GetGroupsStore()

		ids := make([]uuid.UUID, 0, len(invitations)+1)
		ids = append(ids, caller)
		for _, inv := range invitations {
			ids = append(ids, inv.InvitedUserID)
		}
		found, err := r.GetUsersStore().GetUsers(ctx, ids)
		if err != nil {
			return err
		}
		users = usersByID(found)
		if _, ok := users[caller]; !ok {
			return storage.ErrUserNotFound
		}
		if len(users) != len(ids) {
			return invalidf("invited user does not exist")
		}

		switch groupType {
		case models.GroupTypePublic:
			taken, err := groups.PublicNameExists(ctx, newGroup.Name)
			if err != nil {
				return err
			}
			if taken {
				return invalidf("public group %q already exists", newGroup.Name)
			}
		case models.GroupTypeChat:
			exists, err := groups.ChatPairExists(ctx, caller, invitations[0].InvitedUserID)
			if err != nil {
				return err
			}
			if exists {
				return invalidf("chat with user %s already exists", invitations[0].InvitedUserID)
			}
		}

		if err = groups.CreateGroup(ctx, &group); err != nil {
			return err
		}

		err = groups.AddMembership(ctx, &models.Membership{
			UserID:    caller,
			GroupID:   group.GroupID,
			IsCreator: true,
			AddDate:   now,
		})
		if err != nil {
			return err
		}

		if groupType == models.GroupTypeChat {
			err = groups.CreateChatPair(ctx, group.GroupID, caller, invitations[0].InvitedUserID)
			if err != nil {
				return err
			}
		}

		if err = r.GetInvitationsStore().AddInvitations(ctx, invitations); err != nil {
			return err
		}

		connections, err = r.GetConnectionsStore().GetUserConnections(ctx, caller)
		return err
	})

	if err != nil {
		return storageError(err)
	}

	u.router.AddToChannel(GroupChannel(group.GroupID), connectionIDs(connections)...)

	simple := simpleGroup(&group)
	u.notifier.ToUser(ctx, caller, models.NewEvent(models.TargetReceiveSimpleGroup, simple))

	audience := []string{caller.String()}
	invited := make([]uuid.UUID, len(invitations))
	for i := range invitations {
		invited[i] = invitations[i].InvitedUserID
		audience = append(audience, invited[i].String())

		payload := invitationModel(&invitations[i], &simple, users)
		u.notifier.ToUserOnHub(ctx, models.HubInvitation, invited[i],
			models.NewEvent(models.TargetReceiveInvitation, payload))
	}

	if newGroup.HaveImage {
		uploadURL := u.uploadURL(ctx, *group.ImageID)
		u.notifier.ToUser(ctx, caller, models.NewEvent(models.TargetSendGroupImage,
			*group.ImageID, newGroup.PreviousImageID, uploadURL))
	} else {
		u.notifier.ToUser(ctx, caller, models.NewEvent(models.TargetReceiveGroupResultType,
			models.GroupResultSuccessAdded))
	}

	u.publish("group_created", u.registry.GetUpdatesStore().GroupCreated(&models.GroupCreated{
		UpdateMeta: models.UpdateMeta{
			Timestamp: now,
			Audience:  audience,
		},
		GroupID:   group.GroupID,
		Type:      group.Type,
		CreatorID: caller,
		Invited:   invited,
	}))

	return nil
}

// LeaveGroup marks the caller's membership as left. The row is kept.
func (u *GroupsUsecase) LeaveGroup(ctx context.Context, caller, groupID uuid.UUID) error {
	var (
		connections []models.Connection
		audience    []string
	)

	err := u.registry.Atomic(ctx, func(r storage.Registry) error {
		groups := r.GetGroupsStore()

		m, err := groups.GetMembership(ctx, groupID, caller)
		if err != nil {
			return err
		}
		if m.IsLeaved {
			return storage.ErrMembershipNotFound
		}

		if err = groups.SetLeaved(ctx, groupID, caller, true); err != nil {
			return err
		}

		members, err := groups.GetGroupMembers(ctx, groupID)
		if err != nil {
			return err
		}
		audience = activeAudience(members)

		connections, err = r.GetConnectionsStore().GetUserConnections(ctx, caller)
		return err
	})

	if err != nil {
		return storageError(err)
	}

	channel := GroupChannel(groupID)
	u.router.RemoveFromChannel(channel, connectionIDs(connections)...)
	u.notifier.ToUser(ctx, caller, models.NewEvent(models.TargetReceiveGroupResultType, models.GroupResultSuccessLeft))
	u.notifier.ToChannel(ctx, channel, models.NewEvent(models.TargetReceiveLeftGroupUserID, caller, groupID))

	u.publish("member_left", u.registry.GetUpdatesStore().MemberLeft(&models.MemberLeft{
		UpdateMeta: models.UpdateMeta{
			Timestamp: u.now(),
			Audience:  audience,
		},
		GroupID: groupID,
		UserID:  caller,
	}))

	return nil
}

// RemoveGroup deletes the group with everything it owns. Only the creator may
// remove a group; other members get ErrForbidden and nothing changes.
func (u *GroupsUsecase) RemoveGroup(ctx context.Context, caller, groupID uuid.UUID) error {
	var (
		group        *models.Group
		connections  []models.Connection
		invitations  []models.Invitation
		applications []models.Application
		audience     []string
	)

	err := u.registry.Atomic(ctx, func(r storage.Registry) error {
		groups := r.GetGroupsStore()

		m, err := groups.GetMembership(ctx, groupID, caller)
		if err != nil {
			return err
		}
		if m.IsLeaved {
			return storage.ErrMembershipNotFound
		}
		if !m.IsCreator {
			return fmt.Errorf("%w: only the creator can remove group %s", ErrForbidden, groupID)
		}

		if group, err = groups.GetGroup(ctx, groupID); err != nil {
			return err
		}

		members, err := groups.GetGroupMembers(ctx, groupID)
		if err != nil {
			return err
		}
		audience = activeAudience(members)

		if connections, err = r.GetConnectionsStore().GetGroupConnections(ctx, groupID); err != nil {
			return err
		}
		if invitations, err = r.GetInvitationsStore().GetGroupInvitations(ctx, groupID); err != nil {
			return err
		}
		if applications, err = r.GetApplicationsStore().GetGroupApplications(ctx, groupID); err != nil {
			return err
		}

		return groups.DeleteGroup(ctx, groupID)
	})

	if err != nil {
		return storageError(err)
	}

	channel := GroupChannel(groupID)
	u.notifier.ToChannel(ctx, channel, models.NewEvent(models.TargetReceiveRemovedGroup, groupID, models.GroupRemovedText))
	u.router.RemoveFromChannel(channel, connectionIDs(connections)...)

	for i := range invitations {
		reduced := []models.ReduceInvitationModel{reduceInvitation(&invitations[i])}
		u.notifier.ToUserOnHub(ctx, models.HubInvitation, invitations[i].InvitedUserID,
			models.NewEvent(models.TargetReduceMyInvitations, reduced))
	}
	for i := range applications {
		u.notifier.ToUserOnHub(ctx, models.HubApplication, applications[i].UserID,
			models.NewEvent(models.TargetReduceMyApplicationsCount, 1))
	}

	if group.ImageID != nil && u.images != nil {
		if err := u.images.Remove(ctx, *group.ImageID); err != nil {
			u.logger.WithError(err).
				WithField("image_id", group.ImageID.String()).
				Warn("failed to remove group image")
		}
	}

	u.publish("group_removed", u.registry.GetUpdatesStore().GroupRemoved(&models.GroupRemoved{
		UpdateMeta: models.UpdateMeta{
			Timestamp: u.now(),
			Audience:  audience,
		},
		GroupID:   groupID,
		RemovedBy: caller,
	}))

	return nil
}

// SendGroupData pushes the group view to the caller.
func (u *GroupsUsecase) SendGroupData(ctx context.Context, caller, groupID uuid.UUID) error {
	var (
		data      groupData
		isCreator bool
	)

	err := u.registry.Atomic(ctx, func(r storage.Registry) error {
		groups := r.GetGroupsStore()

		m, err := groups.GetMembership(ctx, groupID, caller)
		if err != nil {
			return err
		}
		if m.IsLeaved {
			return storage.ErrMembershipNotFound
		}
		isCreator = m.IsCreator

		if data.group, err = groups.GetGroup(ctx, groupID); err != nil {
			return err
		}
		if data.members, err = groups.GetGroupMembers(ctx, groupID); err != nil {
			return err
		}
		data.messages, err = r.GetMessagesStore().GetLatestMessages(ctx, groupID, GroupDataMessagesCount)
		if err != nil {
			return err
		}

		if isCreator {
			if data.invitations, err = r.GetInvitationsStore().GetGroupInvitations(ctx, groupID); err != nil {
				return err
			}
			if data.applications, err = r.GetApplicationsStore().GetGroupApplications(ctx, groupID); err != nil {
				return err
			}
		}

		users, err := r.GetUsersStore().GetUsers(ctx, data.referencedUsers())
		if err != nil {
			return err
		}
		data.users = usersByID(users)
		return nil
	})

	if err != nil {
		return storageError(err)
	}

	u.notifier.ToUser(ctx, caller, models.NewEvent(models.TargetReceiveGroupData, groupModel(&data, isCreator)))
	return nil
}

// SearchNoMyGroup pushes public groups matching namePart that the caller is
// not an active member of. Last messages are never disclosed.
func (u *GroupsUsecase) SearchNoMyGroup(ctx context.Context, caller uuid.UUID, namePart string) error {
	groups, err := u.registry.GetGroupsStore().SearchPublicGroups(ctx, caller, namePart, SearchGroupsLimit)
	if err != nil {
		return storageError(err)
	}

	result := make([]models.SimpleGroupModel, len(groups))
	for i := range groups {
		result[i] = simpleGroup(&groups[i])
		result[i].LastMessage = nil
	}

	u.notifier.ToUser(ctx, caller, models.NewEvent(models.TargetReceiveNoMySearchedGroups, result))
	return nil
}

// CheckGroupNamePart pushes whether name is still free among public groups.
func (u *GroupsUsecase) CheckGroupNamePart(ctx context.Context, caller uuid.UUID, name string) error {
	taken, err := u.registry.GetGroupsStore().PublicNameExists(ctx, name)
	if err != nil {
		return storageError(err)
	}

	u.notifier.ToUser(ctx, caller, models.NewEvent(models.TargetReceiveCheckGroupNamePartResult, !taken))
	return nil
}

func (u *GroupsUsecase) uploadURL(ctx context.Context, imageID uuid.UUID) string {
	if u.images == nil {
		return ""
	}
	url, err := u.images.PresignedUploadURL(ctx, imageID)
	if err != nil {
		u.logger.WithError(err).
			WithField("image_id", imageID.String()).
			Warn("failed to presign group image upload")
		return ""
	}
	return url
}

func (u *GroupsUsecase) publish(kind string, err error) {
	if err != nil {
		u.logger.WithError(err).WithField("update", kind).Warn("failed to publish update")
	}
}

func (d *groupData) referencedUsers() []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0)
	add := func(id uuid.UUID) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, m := range d.messages {
		add(m.UserID)
	}
	for _, inv := range d.invitations {
		add(inv.InviterID)
		add(inv.InvitedUserID)
	}
	for _, a := range d.applications {
		add(a.UserID)
	}
	return ids
}

func activeAudience(members []models.GroupMember) []string {
	audience := make([]string, 0, len(members))
	for _, m := range members {
		if !m.IsLeaved {
			audience = append(audience, m.UserID.String())
		}
	}
	return audience
}
