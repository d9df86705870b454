package ecs

// entityStore tracks entity generations, free ids and spawn order.
type entityStore struct {
	gen   []generation
	spawn []uint64
	alive []bool
	free  []entityID
	seq   uint64
	count int
}

func (s *entityStore) create() Entity {
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gen = append(s.gen, 0)
		s.spawn = append(s.spawn, 0)
		s.alive = append(s.alive, false)
		id = entityID(len(s.gen))
	}
	idx := id - 1
	s.seq++
	s.spawn[idx] = s.seq
	s.alive[idx] = true
	s.count++
	return makeEntity(id, s.gen[idx])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	idx := e.id() - 1
	s.gen[idx]++
	s.alive[idx] = false
	s.free = append(s.free, e.id())
	s.count--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gen) {
		return false
	}
	idx := id - 1
	return s.alive[idx] && s.gen[idx] == e.generation()
}

// entity rebuilds the live handle for a raw id.
func (s *entityStore) entity(id entityID) (Entity, bool) {
	if id == 0 || int(id) > len(s.gen) || !s.alive[id-1] {
		return 0, false
	}
	return makeEntity(id, s.gen[id-1]), true
}

func (s *entityStore) spawnOrder(id entityID) uint64 {
	if id == 0 || int(id) > len(s.spawn) {
		return 0
	}
	return s.spawn[id-1]
}
