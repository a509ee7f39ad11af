package usecases

import (
	"github.com/google/uuid"
	"github.com/practice-sem-2/messenger-service/internal/models"
)

func simpleUser(u *models.User) models.SimpleUserModel {
	if u == nil {
		return models.SimpleUserModel{}
	}
	return models.SimpleUserModel{
		ID:      u.UserID,
		Email:   u.Email,
		ImageID: u.ImageID,
	}
}

// simpleUserOf looks id up in users and falls back to a bare id.
func simpleUserOf(users map[uuid.UUID]*models.User, id uuid.UUID) models.SimpleUserModel {
	if u, ok := users[id]; ok {
		return simpleUser(u)
	}
	return models.SimpleUserModel{ID: id}
}

func usersByID(users []models.User) map[uuid.UUID]*models.User {
	m := make(map[uuid.UUID]*models.User, len(users))
	for i := range users {
		m[users[i].UserID] = &users[i]
	}
	return m
}

func simpleGroup(g *models.Group) models.SimpleGroupModel {
	return models.SimpleGroupModel{
		ID:      g.GroupID,
		Name:    g.Name,
		Type:    g.Type,
		ImageID: g.ImageID,
	}
}

func messageModel(m *models.Message, author models.SimpleUserModel) models.MessageModel {
	return models.MessageModel{
		ID:       m.MessageID,
		GroupID:  m.GroupID,
		Value:    m.Value,
		OldValue: m.OldValue,
		SendDate: m.SendDate,
		EditDate: m.EditDate,
		User:     author,
	}
}

func groupUser(m *models.GroupMember) models.GroupUserModel {
	return models.GroupUserModel{
		ID:        m.UserID,
		Email:     m.Email,
		ImageID:   m.ImageID,
		IsCreator: m.IsCreator,
		IsLeaved:  m.IsLeaved,
	}
}

func invitationModel(inv *models.Invitation, group *models.SimpleGroupModel, users map[uuid.UUID]*models.User) models.InvitationModel {
	return models.InvitationModel{
		Value:       inv.Value,
		SendDate:    inv.SendDate,
		SimpleGroup: group,
		Inviter:     simpleUserOf(users, inv.InviterID),
		InvitedUser: simpleUserOf(users, inv.InvitedUserID),
	}
}

func reduceInvitation(inv *models.Invitation) models.ReduceInvitationModel {
	return models.ReduceInvitationModel{
		GroupID:       inv.GroupID,
		InvitedUserID: inv.InvitedUserID,
		InviterID:     inv.InviterID,
	}
}

func applicationModel(a *models.Application, users map[uuid.UUID]*models.User) models.ApplicationModel {
	return models.ApplicationModel{
		GroupID:  a.GroupID,
		Value:    a.Value,
		SendDate: a.SendDate,
		User:     simpleUserOf(users, a.UserID),
	}
}

// groupData is everything needed to project a GroupModel.
type groupData struct {
	group        *models.Group
	members      []models.GroupMember
	messages     []models.Message
	invitations  []models.Invitation
	applications []models.Application
	users        map[uuid.UUID]*models.User
}

// groupModel projects the group for a viewer. Pending invitations and
// applications are only disclosed to the creator.
func groupModel(d *groupData, viewerIsCreator bool) models.GroupModel {
	g := models.GroupModel{
		ID:           d.group.GroupID,
		Name:         d.group.Name,
		Type:         d.group.Type,
		CreationDate: d.group.CreationDate,
		ImageID:      d.group.ImageID,
		IsCreator:    viewerIsCreator,
		Users:        make([]models.GroupUserModel, len(d.members)),
		Messages:     make([]models.MessageModel, len(d.messages)),
	}

	for i := range d.members {
		g.Users[i] = groupUser(&d.members[i])
	}
	for i := range d.messages {
		g.Messages[i] = messageModel(&d.messages[i], simpleUserOf(d.users, d.messages[i].UserID))
	}

	if !viewerIsCreator {
		return g
	}

	simple := simpleGroup(d.group)
	g.Invitations = make([]models.InvitationModel, len(d.invitations))
	for i := range d.invitations {
		g.Invitations[i] = invitationModel(&d.invitations[i], &simple, d.users)
	}
	g.Applications = make([]models.ApplicationModel, len(d.applications))
	for i := range d.applications {
		g.Applications[i] = applicationModel(&d.applications[i], d.users)
	}
	return g
}
