package usecases

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/practice-sem-2/messenger-service/internal/models"
	storage "github.com/practice-sem-2/messenger-service/internal/storages"
)

type membershipKey struct {
	groupID uuid.UUID
	userID  uuid.UUID
}

type pairKey struct {
	first  uuid.UUID
	second uuid.UUID
}

func newPairKey(a, b uuid.UUID) pairKey {
	if a.String() > b.String() {
		a, b = b, a
	}
	return pairKey{first: a, second: b}
}

// fakeState is an in-memory copy of the schema with the same constraints.
type fakeState struct {
	users        map[uuid.UUID]models.User
	groups       map[uuid.UUID]models.Group
	pairs        map[pairKey]uuid.UUID
	memberships  map[membershipKey]models.Membership
	invitations  []models.Invitation
	applications []models.Application
	messages     map[uuid.UUID]models.Message
	connections  map[string]models.Connection
}

func newFakeState() *fakeState {
	return &fakeState{
		users:       map[uuid.UUID]models.User{},
		groups:      map[uuid.UUID]models.Group{},
		pairs:       map[pairKey]uuid.UUID{},
		memberships: map[membershipKey]models.Membership{},
		messages:    map[uuid.UUID]models.Message{},
		connections: map[string]models.Connection{},
	}
}

func (s *fakeState) clone() *fakeState {
	c := newFakeState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.groups {
		c.groups[k] = v
	}
	for k, v := range s.pairs {
		c.pairs[k] = v
	}
	for k, v := range s.memberships {
		c.memberships[k] = v
	}
	for k, v := range s.messages {
		c.messages[k] = v
	}
	for k, v := range s.connections {
		c.connections[k] = v
	}
	c.invitations = append([]models.Invitation(nil), s.invitations...)
	c.applications = append([]models.Application(nil), s.applications...)
	return c
}

type fakeUpdates struct {
	mu      sync.Mutex
	created []models.GroupCreated
	left    []models.MemberLeft
	removed []models.GroupRemoved
	sent    []models.MessageSent
	err     error
}

func (f *fakeUpdates) GroupCreated(u *models.GroupCreated) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, *u)
	return f.err
}

func (f *fakeUpdates) MemberLeft(u *models.MemberLeft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.left = append(f.left, *u)
	return f.err
}

func (f *fakeUpdates) GroupRemoved(u *models.GroupRemoved) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, *u)
	return f.err
}

func (f *fakeUpdates) MessageSent(u *models.MessageSent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, *u)
	return f.err
}

// fakeRegistry serializes transactions with a mutex and restores a snapshot
// when the transaction fails.
type fakeRegistry struct {
	mu      *sync.Mutex
	state   **fakeState
	inTx    bool
	updates *fakeUpdates
	// failOn makes the named store method fail with errFake.
	failOn map[string]bool
}

var errFake = errors.New("store is broken")

func newFakeRegistry() *fakeRegistry {
	st := newFakeState()
	return &fakeRegistry{
		mu:      &sync.Mutex{},
		state:   &st,
		updates: &fakeUpdates{},
		failOn:  map[string]bool{},
	}
}

func (r *fakeRegistry) st() *fakeState {
	return *r.state
}

func (r *fakeRegistry) fail(method string) error {
	if r.failOn[method] {
		return errFake
	}
	return nil
}

func (r *fakeRegistry) Atomic(_ context.Context, fn storage.AtomicFunc) error {
	if r.inTx {
		return fn(r)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := r.st().clone()
	tx := *r
	tx.inTx = true
	if err := fn(&tx); err != nil {
		*r.state = snapshot
		return err
	}
	return nil
}

func (r *fakeRegistry) GetGroupsStore() storage.GroupsStore           { return fakeGroups{r} }
func (r *fakeRegistry) GetInvitationsStore() storage.InvitationsStore { return fakeInvitations{r} }
func (r *fakeRegistry) GetApplicationsStore() storage.ApplicationsStore {
	return fakeApplications{r}
}
func (r *fakeRegistry) GetMessagesStore() storage.MessagesStore       { return fakeMessages{r} }
func (r *fakeRegistry) GetConnectionsStore() storage.ConnectionsStore { return fakeConnections{r} }
func (r *fakeRegistry) GetUsersStore() storage.UsersStore             { return fakeUsers{r} }
func (r *fakeRegistry) GetUpdatesStore() storage.UpdatesStore         { return r.updates }

type fakeGroups struct{ r *fakeRegistry }

func (f fakeGroups) CreateGroup(_ context.Context, g *models.Group) error {
	if err := f.r.fail("CreateGroup"); err != nil {
		return err
	}
	st := f.r.st()
	if _, ok := st.groups[g.GroupID]; ok {
		return storage.ErrGroupAlreadyExists
	}
	if (g.Type == models.GroupTypeChat) != (g.Name == nil) {
		return storage.ErrGroupInvalid
	}
	if g.Type == models.GroupTypePublic {
		for _, other := range st.groups {
			if other.Type == models.GroupTypePublic && *other.Name == *g.Name {
				return storage.ErrGroupNameTaken
			}
		}
	}
	st.groups[g.GroupID] = *g
	return nil
}

func (f fakeGroups) GetGroup(_ context.Context, groupID uuid.UUID) (*models.Group, error) {
	g, ok := f.r.st().groups[groupID]
	if !ok {
		return nil, storage.ErrGroupNotFound
	}
	return &g, nil
}

func (f fakeGroups) DeleteGroup(_ context.Context, groupID uuid.UUID) error {
	if err := f.r.fail("DeleteGroup"); err != nil {
		return err
	}
	st := f.r.st()
	if _, ok := st.groups[groupID]; !ok {
		return storage.ErrGroupNotFound
	}
	delete(st.groups, groupID)
	for k, id := range st.pairs {
		if id == groupID {
			delete(st.pairs, k)
		}
	}
	for k := range st.memberships {
		if k.groupID == groupID {
			delete(st.memberships, k)
		}
	}
	for k, m := range st.messages {
		if m.GroupID == groupID {
			delete(st.messages, k)
		}
	}
	invitations := st.invitations[:0]
	for _, inv := range st.invitations {
		if inv.GroupID != groupID {
			invitations = append(invitations, inv)
		}
	}
	st.invitations = invitations
	applications := st.applications[:0]
	for _, a := range st.applications {
		if a.GroupID != groupID {
			applications = append(applications, a)
		}
	}
	st.applications = applications
	return nil
}

func (f fakeGroups) PublicNameExists(_ context.Context, name string) (bool, error) {
	for _, g := range f.r.st().groups {
		if g.Type == models.GroupTypePublic && *g.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeGroups) SearchPublicGroups(_ context.Context, userID uuid.UUID, namePart string, limit uint64) ([]models.Group, error) {
	st := f.r.st()
	result := make([]models.Group, 0)
	for _, g := range st.groups {
		if g.Type != models.GroupTypePublic {
			continue
		}
		if !strings.Contains(strings.ToLower(*g.Name), strings.ToLower(namePart)) {
			continue
		}
		if m, ok := st.memberships[membershipKey{g.GroupID, userID}]; ok && !m.IsLeaved {
			continue
		}
		result = append(result, g)
	}
	sort.Slice(result, func(i, j int) bool { return *result[i].Name < *result[j].Name })
	if limit > 0 && uint64(len(result)) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (f fakeGroups) CreateChatPair(_ context.Context, groupID, first, second uuid.UUID) error {
	st := f.r.st()
	key := newPairKey(first, second)
	if _, ok := st.pairs[key]; ok {
		return storage.ErrChatAlreadyExists
	}
	st.pairs[key] = groupID
	return nil
}

func (f fakeGroups) ChatPairExists(_ context.Context, first, second uuid.UUID) (bool, error) {
	_, ok := f.r.st().pairs[newPairKey(first, second)]
	return ok, nil
}

func (f fakeGroups) AddMembership(_ context.Context, m *models.Membership) error {
	st := f.r.st()
	if _, ok := st.users[m.UserID]; !ok {
		return storage.ErrUserNotFound
	}
	if _, ok := st.groups[m.GroupID]; !ok {
		return storage.ErrGroupNotFound
	}
	key := membershipKey{m.GroupID, m.UserID}
	if _, ok := st.memberships[key]; ok {
		return storage.ErrMembershipAlreadyExists
	}
	st.memberships[key] = *m
	return nil
}

func (f fakeGroups) GetMembership(_ context.Context, groupID, userID uuid.UUID) (*models.Membership, error) {
	m, ok := f.r.st().memberships[membershipKey{groupID, userID}]
	if !ok {
		return nil, storage.ErrMembershipNotFound
	}
	return &m, nil
}

func (f fakeGroups) SetLeaved(_ context.Context, groupID, userID uuid.UUID, leaved bool) error {
	if err := f.r.fail("SetLeaved"); err != nil {
		return err
	}
	st := f.r.st()
	key := membershipKey{groupID, userID}
	m, ok := st.memberships[key]
	if !ok {
		return storage.ErrMembershipNotFound
	}
	m.IsLeaved = leaved
	st.memberships[key] = m
	return nil
}

func (f fakeGroups) GetGroupMembers(_ context.Context, groupID uuid.UUID) ([]models.GroupMember, error) {
	st := f.r.st()
	members := make([]models.GroupMember, 0)
	for k, m := range st.memberships {
		if k.groupID != groupID {
			continue
		}
		u := st.users[k.userID]
		members = append(members, models.GroupMember{
			Membership: m,
			Email:      u.Email,
			ImageID:    u.ImageID,
		})
	}
	sort.Slice(members, func(i, j int) bool {
		if !members[i].AddDate.Equal(members[j].AddDate) {
			return members[i].AddDate.Before(members[j].AddDate)
		}
		return members[i].UserID.String() < members[j].UserID.String()
	})
	return members, nil
}

func (f fakeGroups) GetActiveGroupIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	for k, m := range f.r.st().memberships {
		if k.userID == userID && !m.IsLeaved {
			ids = append(ids, k.groupID)
		}
	}
	return ids, nil
}

type fakeInvitations struct{ r *fakeRegistry }

func (f fakeInvitations) AddInvitations(_ context.Context, invitations []models.Invitation) error {
	if err := f.r.fail("AddInvitations"); err != nil {
		return err
	}
	st := f.r.st()
	for _, inv := range invitations {
		if _, ok := st.users[inv.InvitedUserID]; !ok {
			return storage.ErrUserNotFound
		}
		for _, other := range st.invitations {
			if other.GroupID == inv.GroupID && other.InvitedUserID == inv.InvitedUserID {
				return storage.ErrInvitationAlreadyExists
			}
		}
		st.invitations = append(st.invitations, inv)
	}
	return nil
}

func (f fakeInvitations) GetGroupInvitations(_ context.Context, groupID uuid.UUID) ([]models.Invitation, error) {
	result := make([]models.Invitation, 0)
	for _, inv := range f.r.st().invitations {
		if inv.GroupID == groupID {
			result = append(result, inv)
		}
	}
	return result, nil
}

type fakeApplications struct{ r *fakeRegistry }

func (f fakeApplications) AddApplication(_ context.Context, a *models.Application) error {
	st := f.r.st()
	for _, other := range st.applications {
		if other.GroupID == a.GroupID && other.UserID == a.UserID {
			return storage.ErrApplicationAlreadyExists
		}
	}
	st.applications = append(st.applications, *a)
	return nil
}

func (f fakeApplications) GetGroupApplications(_ context.Context, groupID uuid.UUID) ([]models.Application, error) {
	result := make([]models.Application, 0)
	for _, a := range f.r.st().applications {
		if a.GroupID == groupID {
			result = append(result, a)
		}
	}
	return result, nil
}

type fakeMessages struct{ r *fakeRegistry }

func (f fakeMessages) PutMessage(_ context.Context, m *models.Message) error {
	st := f.r.st()
	if _, ok := st.messages[m.MessageID]; ok {
		return storage.ErrMessageAlreadyExists
	}
	if _, ok := st.groups[m.GroupID]; !ok {
		return storage.ErrGroupNotFound
	}
	st.messages[m.MessageID] = *m
	return nil
}

func (f fakeMessages) GetMessage(_ context.Context, messageID uuid.UUID) (*models.Message, error) {
	m, ok := f.r.st().messages[messageID]
	if !ok {
		return nil, storage.ErrMessageNotFound
	}
	return &m, nil
}

func (f fakeMessages) EditMessage(_ context.Context, m *models.Message) error {
	st := f.r.st()
	if _, ok := st.messages[m.MessageID]; !ok {
		return storage.ErrMessageNotFound
	}
	st.messages[m.MessageID] = *m
	return nil
}

func (f fakeMessages) SelectMessages(context.Context, sq.Sqlizer, ...storage.SelectOptions) ([]models.Message, error) {
	return nil, errors.New("arbitrary selectors are not supported by the fake")
}

func (f fakeMessages) GetLatestMessages(_ context.Context, groupID uuid.UUID, count uint64) ([]models.Message, error) {
	result := make([]models.Message, 0)
	for _, m := range f.r.st().messages {
		if m.GroupID == groupID {
			result = append(result, m)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SendDate.Before(result[j].SendDate) })
	if count > 0 && uint64(len(result)) > count {
		result = result[uint64(len(result))-count:]
	}
	return result, nil
}

type fakeConnections struct{ r *fakeRegistry }

func (f fakeConnections) PutConnection(_ context.Context, c *models.Connection) error {
	st := f.r.st()
	if _, ok := st.users[c.UserID]; !ok {
		return storage.ErrUserNotFound
	}
	st.connections[c.ConnectionID] = *c
	return nil
}

func (f fakeConnections) SetConnected(_ context.Context, connectionID string, connected bool) (*models.Connection, error) {
	st := f.r.st()
	c, ok := st.connections[connectionID]
	if !ok {
		return nil, storage.ErrConnectionNotFound
	}
	c.IsConnected = connected
	st.connections[connectionID] = c
	return &c, nil
}

func (f fakeConnections) GetUserConnections(_ context.Context, userID uuid.UUID) ([]models.Connection, error) {
	result := make([]models.Connection, 0)
	for _, c := range f.r.st().connections {
		if c.UserID == userID && c.IsConnected {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ConnectionID < result[j].ConnectionID })
	return result, nil
}

func (f fakeConnections) GetGroupConnections(_ context.Context, groupID uuid.UUID) ([]models.Connection, error) {
	st := f.r.st()
	result := make([]models.Connection, 0)
	for _, c := range st.connections {
		m, ok := st.memberships[membershipKey{groupID, c.UserID}]
		if ok && !m.IsLeaved && c.IsConnected {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ConnectionID < result[j].ConnectionID })
	return result, nil
}

type fakeUsers struct{ r *fakeRegistry }

func (f fakeUsers) PutUser(_ context.Context, u *models.User) error {
	f.r.st().users[u.UserID] = *u
	return nil
}

func (f fakeUsers) GetUser(_ context.Context, userID uuid.UUID) (*models.User, error) {
	u, ok := f.r.st().users[userID]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return &u, nil
}

func (f fakeUsers) GetUsers(_ context.Context, userIDs []uuid.UUID) ([]models.User, error) {
	result := make([]models.User, 0, len(userIDs))
	for _, id := range userIDs {
		if u, ok := f.r.st().users[id]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}

func (f fakeUsers) SetBan(_ context.Context, userIDs []uuid.UUID, banned bool) error {
	if err := f.r.fail("SetBan"); err != nil {
		return err
	}
	st := f.r.st()
	for _, id := range userIDs {
		if u, ok := st.users[id]; ok {
			u.IsInBan = banned
			st.users[id] = u
		}
	}
	return nil
}

func (f fakeUsers) SearchByEmail(_ context.Context, emailPart string, banned bool, limit uint64) ([]models.User, error) {
	result := make([]models.User, 0)
	for _, u := range f.r.st().users {
		if u.IsInBan == banned && strings.Contains(strings.ToLower(u.Email), strings.ToLower(emailPart)) {
			result = append(result, u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Email < result[j].Email })
	if limit > 0 && uint64(len(result)) > limit {
		result = result[:limit]
	}
	return result, nil
}

type delivery struct {
	connectionID string
	userID       uuid.UUID
	hub          models.Hub
	event        models.Event
}

// fakeHub keeps channel membership and records every delivered event per
// live connection.
type fakeHub struct {
	mu         sync.Mutex
	live       map[string]uuid.UUID
	channels   map[string]map[string]bool
	deliveries []delivery
}

func newFakeHub() *fakeHub {
	return &fakeHub{
		live:     map[string]uuid.UUID{},
		channels: map[string]map[string]bool{},
	}
}

func (h *fakeHub) Register(userID uuid.UUID, connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.live[connectionID] = userID
}

func (h *fakeHub) Unregister(connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.live, connectionID)
	for _, members := range h.channels {
		delete(members, connectionID)
	}
}

func (h *fakeHub) AddToChannel(channel string, connectionIDs ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, id := range connectionIDs {
		if _, ok := h.live[id]; !ok {
			continue
		}
		if h.channels[channel] == nil {
			h.channels[channel] = map[string]bool{}
		}
		h.channels[channel][id] = true
	}
}

func (h *fakeHub) RemoveFromChannel(channel string, connectionIDs ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, id := range connectionIDs {
		delete(h.channels[channel], id)
	}
}

func (h *fakeHub) inChannel(channel, connectionID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.channels[channel][connectionID]
}

func (h *fakeHub) deliverToUser(hub models.Hub, userID uuid.UUID, event models.Event) {
	for id, owner := range h.live {
		if owner == userID {
			h.deliveries = append(h.deliveries, delivery{id, owner, hub, event})
		}
	}
}

func (h *fakeHub) ToUser(_ context.Context, userID uuid.UUID, event models.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.deliverToUser(models.HubGroup, userID, event)
}

func (h *fakeHub) ToChannel(_ context.Context, channel string, event models.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id := range h.channels[channel] {
		h.deliveries = append(h.deliveries, delivery{id, h.live[id], models.HubGroup, event})
	}
}

func (h *fakeHub) ToUserOnHub(_ context.Context, hub models.Hub, userID uuid.UUID, event models.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.deliverToUser(hub, userID, event)
}

// received returns the events delivered to userID with the given target.
func (h *fakeHub) received(userID uuid.UUID, target string) []delivery {
	h.mu.Lock()
	defer h.mu.Unlock()
	result := make([]delivery, 0)
	for _, d := range h.deliveries {
		if d.userID == userID && d.event.Target == target {
			result = append(result, d)
		}
	}
	return result
}

func (h *fakeHub) reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.deliveries = nil
}
