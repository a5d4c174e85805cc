package registry

import (
	"fmt"
)

type inMemoryRepo map[string]*Requirement

func NewInMemoryRepo() Repo {
	return &inMemoryRepo{}
}

func (s *inMemoryRepo) Name() string {
	return "in-memory"
}

func (s *inMemoryRepo) Get(name string) (*Requirement, error) {
	req, ok := (*s)[name]
	if !ok {
		return nil, fmt.Errorf("requirement not found: %s", name)
	}
	return req, nil
}

func (s *inMemoryRepo) Save(req *Requirement) error {
	(*s)[req.Name] = req
	return nil
}

func (s *inMemoryRepo) Remove(name string) error {
	delete(*s, name)
	return nil
}

func (s *inMemoryRepo) Each(fn func(req *Requirement)) error {
	for _, req := range *s {
		fn(req)
	}
	return nil
}

func (s *inMemoryRepo) Count() int {
	return len(*s)
}

func (s *inMemoryRepo) Close() {
	// no op
}
