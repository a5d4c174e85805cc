package registry

import (
	"fmt"

	"github.com/boltdb/bolt"
)

type boltRepo struct {
	storePath  string
	bucketName []byte

	db     *bolt.DB
	opened bool
}

func NewBoltRepo(storePath string) Repo {
	return &boltRepo{storePath: storePath, bucketName: []byte("requirements")}
}

func (s *boltRepo) open() (err error) {
	if s.opened {
		return
	}

	s.db, err = bolt.Open(s.storePath, 0600, nil)
	if err != nil {
		return
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists(s.bucketName)
		return err
	})

	if err == nil {
		s.opened = true
	}

	return
}

func (s *boltRepo) Name() string {
	return "bolt"
}

func (s *boltRepo) Get(name string) (req *Requirement, err error) {
	err = s.open()
	if err != nil {
		return
	}

	var val []byte
	err = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucketName)
		val = b.Get([]byte(name))
		return nil
	})
	if err != nil {
		return
	}
	if val == nil {
		return nil, fmt.Errorf("requirement not found: %s", name)
	}

	return decode(val)
}

func (s *boltRepo) Save(req *Requirement) error {
	err := s.open()
	if err != nil {
		return err
	}

	val, err := encode(req)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucketName)
		return b.Put([]byte(req.Name), val)
	})
}

func (s *boltRepo) Remove(name string) error {
	err := s.open()
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucketName)
		return b.Delete([]byte(name))
	})
}

func (s *boltRepo) Each(fn func(req *Requirement)) error {
	err := s.open()
	if err != nil {
		return err
	}

	return s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucketName).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			req, e := decode(v)
			if e != nil {
				return e
			}
			fn(req)
		}
		return nil
	})
}

func (s *boltRepo) Count() int {
	count := 0
	s.Each(func(req *Requirement) {
		count++
	})
	return count
}

func (s *boltRepo) Close() {
	if s.opened {
		s.db.Close()
		s.opened = false
	}
}
