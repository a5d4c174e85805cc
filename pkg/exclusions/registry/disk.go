package registry

import (
	"fmt"
	"os"
	"path/filepath"
)

// diskRepo reads requirement files (yaml or json) under a root directory.
// It is read-only; Save and Remove are not supported.
type diskRepo struct {
	root string
}

func NewDiskRepo(root string) Repo {
	return &diskRepo{root}
}

func (s *diskRepo) Name() string {
	return "disk"
}

func (s *diskRepo) Get(name string) (*Requirement, error) {
	var found *Requirement
	err := s.Each(func(req *Requirement) {
		if req.Name == name {
			found = req
		}
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("requirement not found: %s", name)
	}
	return found, nil
}

func (s *diskRepo) Save(req *Requirement) error {
	return fmt.Errorf("not implemented")
}

func (s *diskRepo) Remove(name string) error {
	return fmt.Errorf("not implemented")
}

func (s *diskRepo) Each(fn func(req *Requirement)) error {
	return filepath.Walk(s.root, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if f.IsDir() {
			return nil
		}
		data, e := os.ReadFile(path)
		if e != nil {
			return e
		}
		req, e := decode(data)
		if e != nil {
			return fmt.Errorf("%s: %w", path, e)
		}
		fn(req)
		return nil
	})
}

func (s *diskRepo) Count() int {
	count := 0
	s.Each(func(req *Requirement) {
		count++
	})
	return count
}

func (s *diskRepo) Close() {
	// no op
}
