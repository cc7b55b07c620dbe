package platformer

// drawOrder is the order Each visits kinds in: background first, player last.
var drawOrder = []Kind{KindPlatform, KindCoin, KindEnemy, KindPlayer}

// Arena owns every entity of a session. Entities are addressed by a
// type-tagged EntityID and iterated in spawn order within each kind.
type Arena struct {
	nextSeq  uint32
	entities map[EntityID]Entity
	order    map[Kind][]EntityID
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{
		nextSeq:  1,
		entities: make(map[EntityID]Entity),
		order:    make(map[Kind][]EntityID),
	}
}

// Spawn adds an entity and returns its id.
func (a *Arena) Spawn(kind Kind, e Entity) EntityID {
	id := EntityID{Kind: kind, Seq: a.nextSeq}
	a.nextSeq++
	a.entities[id] = e
	a.order[kind] = append(a.order[kind], id)
	return id
}

// Remove deletes an entity. It reports false if the id was not present,
// so removing twice is harmless.
func (a *Arena) Remove(id EntityID) bool {
	if _, ok := a.entities[id]; !ok {
		return false
	}
	delete(a.entities, id)

	ids := a.order[id.Kind]
	for i, other := range ids {
		if other == id {
			a.order[id.Kind] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return true
}

// Get returns the entity for id.
func (a *Arena) Get(id EntityID) (Entity, bool) {
	e, ok := a.entities[id]
	return e, ok
}

// Alive reports whether id is present.
func (a *Arena) Alive(id EntityID) bool {
	_, ok := a.entities[id]
	return ok
}

// IDs returns a copy of the live ids of a kind in spawn order.
// Callers may remove entities while ranging over the result.
func (a *Arena) IDs(kind Kind) []EntityID {
	ids := a.order[kind]
	out := make([]EntityID, len(ids))
	copy(out, ids)
	return out
}

// Len returns the number of live entities of a kind.
func (a *Arena) Len(kind Kind) int {
	return len(a.order[kind])
}

// Each visits every entity, platforms first and the player last.
func (a *Arena) Each(fn func(EntityID, Entity)) {
	for _, kind := range drawOrder {
		for _, id := range a.order[kind] {
			fn(id, a.entities[id])
		}
	}
}
