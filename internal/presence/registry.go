// Package presence tracks live connections of users and their membership in
// broadcast channels. State lives in memory only and is rebuilt from the
// store as clients reconnect.
package presence

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

type set map[string]struct{}

func (s set) sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Registry is safe for concurrent use.
type Registry struct {
	mu sync.RWMutex
	// connection id -> owner
	owners map[string]uuid.UUID
	users  map[uuid.UUID]set
	// channel -> connection ids
	channels map[string]set
	// connection id -> channels it belongs to
	memberships map[string]set
}

func NewRegistry() *Registry {
	return &Registry{
		owners:      make(map[string]uuid.UUID),
		users:       make(map[uuid.UUID]set),
		channels:    make(map[string]set),
		memberships: make(map[string]set),
	}
}

// Register marks connectionID live for userID. Registering a known
// connection again moves it to the new owner.
func (r *Registry) Register(userID uuid.UUID, connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, ok := r.owners[connectionID]; ok {
		r.dropOwner(owner, connectionID)
	}

	r.owners[connectionID] = userID
	if r.users[userID] == nil {
		r.users[userID] = make(set)
	}
	r.users[userID][connectionID] = struct{}{}
}

// Unregister forgets the connection and removes it from every channel.
func (r *Registry) Unregister(connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, ok := r.owners[connectionID]
	if !ok {
		return
	}
	delete(r.owners, connectionID)
	r.dropOwner(owner, connectionID)

	for channel := range r.memberships[connectionID] {
		r.dropMember(channel, connectionID)
	}
	delete(r.memberships, connectionID)
}

func (r *Registry) dropOwner(owner uuid.UUID, connectionID string) {
	delete(r.users[owner], connectionID)
	if len(r.users[owner]) == 0 {
		delete(r.users, owner)
	}
}

func (r *Registry) dropMember(channel, connectionID string) {
	delete(r.channels[channel], connectionID)
	if len(r.channels[channel]) == 0 {
		delete(r.channels, channel)
	}
}

// Connections returns the live connections of userID.
func (r *Registry) Connections(userID uuid.UUID) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users[userID].sorted()
}

// AddToChannel subscribes live connections to channel. Other ids are ignored.
func (r *Registry) AddToChannel(channel string, connectionIDs ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range connectionIDs {
		if _, ok := r.owners[id]; !ok {
			continue
		}
		if r.channels[channel] == nil {
			r.channels[channel] = make(set)
		}
		r.channels[channel][id] = struct{}{}

		if r.memberships[id] == nil {
			r.memberships[id] = make(set)
		}
		r.memberships[id][channel] = struct{}{}
	}
}

func (r *Registry) RemoveFromChannel(channel string, connectionIDs ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range connectionIDs {
		r.dropMember(channel, id)
		delete(r.memberships[id], channel)
	}
}

// ChannelMembers returns the connections subscribed to channel.
func (r *Registry) ChannelMembers(channel string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.channels[channel].sorted()
}

// Stats reports the number of live connections and non-empty channels.
func (r *Registry) Stats() (connections, channels int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.owners), len(r.channels)
}
