package store

// Memory is a map-backed Store for tests and ephemeral runs.
type Memory struct {
	m       map[string][]byte
	saveErr error
}

func NewMemory() *Memory {
	return &Memory{m: make(map[string][]byte)}
}

func (s *Memory) Load(key string) ([]byte, error) {
	v, ok := s.m[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *Memory) Save(key string, value []byte) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	out := make([]byte, len(value))
	copy(out, value)
	s.m[key] = out
	return nil
}

// FailSavesWith makes every subsequent Save return err; pass nil to
// restore normal behavior. Used to exercise the ledger's policy of
// proceeding in memory when a write fails.
func (s *Memory) FailSavesWith(err error) {
	s.saveErr = err
}

// Put seeds a raw payload, bypassing Save failures.
func (s *Memory) Put(key string, value []byte) {
	s.m[key] = value
}
