package service

import (
	"errors"
	"sort"
	"sync"
)

var ErrDuplicateUser = errors.New("username already present in room")

// Member is one connected participant: messages for it are pushed onto Out.
type Member struct {
	Username string
	Out      chan string
}

type room struct {
	members map[string]*Member
}

// Registry tracks chat rooms and their members. A room exists exactly while
// it has members: the first join creates it, the last leave tears it down.
type Registry struct {
	mu     sync.Mutex
	buffer int
	rooms  map[string]*room
}

func NewRegistry(buffer int) *Registry {
	if buffer <= 0 {
		buffer = 64
	}
	return &Registry{
		buffer: buffer,
		rooms:  make(map[string]*room),
	}
}

// Join adds username to roomName, creating the room if needed. A username
// already present in the room is refused.
func (r *Registry) Join(roomName, username string) (*Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[roomName]
	if !ok {
		rm = &room{members: make(map[string]*Member)}
		r.rooms[roomName] = rm
	}
	if _, exists := rm.members[username]; exists {
		return nil, ErrDuplicateUser
	}

	member := &Member{
		Username: username,
		Out:      make(chan string, r.buffer),
	}
	rm.members[username] = member
	return member, nil
}

// Leave removes the member and deletes the room when it empties. The member's
// channel is closed so its writer loop terminates. Returns false when the
// member was already gone, e.g. previously ejected by Broadcast.
func (r *Registry) Leave(roomName, username string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[roomName]
	if !ok {
		return false
	}
	member, ok := rm.members[username]
	if !ok {
		return false
	}
	delete(rm.members, username)
	close(member.Out)
	if len(rm.members) == 0 {
		delete(r.rooms, roomName)
	}
	return true
}

// Broadcast delivers message to every member of the room. Sends never block:
// a member whose channel is full is dropped from the room so one slow
// consumer cannot stall the rest.
func (r *Registry) Broadcast(roomName, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[roomName]
	if !ok {
		return
	}
	for username, member := range rm.members {
		select {
		case member.Out <- message:
		default:
			delete(rm.members, username)
			close(member.Out)
		}
	}
	if len(rm.members) == 0 {
		delete(r.rooms, roomName)
	}
}

// Rooms returns the sorted names of active rooms.
func (r *Registry) Rooms() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.rooms))
	for name := range r.rooms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MemberCount returns how many members a room currently has.
func (r *Registry) MemberCount(roomName string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[roomName]
	if !ok {
		return 0
	}
	return len(rm.members)
}
