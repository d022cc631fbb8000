package project

import (
	"context"
	"fmt"
	"time"

	"nftlend/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/singleflight"
)

const allKey = "project:all"

// Cache floor values are read on every valuation, writes purge the cache
func Cache(store core.IProjectStore, exp time.Duration) core.IProjectStore {
	return &cacheProjectStore{
		IProjectStore: store,
		cache:         gcache.New(1024).LRU().Expiration(exp).Build(),
		sf:            &singleflight.Group{},
	}
}

type cacheProjectStore struct {
	core.IProjectStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheProjectStore) Create(ctx context.Context, tx *db.DB, project *core.Project) error {
	if err := s.IProjectStore.Create(ctx, tx, project); err != nil {
		return err
	}

	s.purge(project.Address)
	return nil
}

func (s *cacheProjectStore) Update(ctx context.Context, tx *db.DB, project *core.Project) error {
	if err := s.IProjectStore.Update(ctx, tx, project); err != nil {
		return err
	}

	s.purge(project.Address)
	return nil
}

func (s *cacheProjectStore) Find(ctx context.Context, address string) (*core.Project, error) {
	key := s.projectKey(address)
	if v, err := s.cache.Get(key); err == nil {
		if project, ok := v.(*core.Project); ok {
			return copyProject(project), nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		project, err := s.IProjectStore.Find(ctx, address)
		if err != nil {
			return nil, err
		}

		if project.Exists() {
			_ = s.cache.Set(key, project)
		}

		return project, nil
	})
	if err != nil {
		return nil, err
	}

	return copyProject(v.(*core.Project)), nil
}

func (s *cacheProjectStore) AllAsMap(ctx context.Context) (map[string]*core.Project, error) {
	if v, err := s.cache.Get(allKey); err == nil {
		if projects, ok := v.(map[string]*core.Project); ok {
			return copyProjects(projects), nil
		}
	}

	v, err, _ := s.sf.Do(allKey, func() (interface{}, error) {
		projects, err := s.IProjectStore.AllAsMap(ctx)
		if err != nil {
			return nil, err
		}

		_ = s.cache.Set(allKey, projects)
		return projects, nil
	})
	if err != nil {
		return nil, err
	}

	return copyProjects(v.(map[string]*core.Project)), nil
}

// Origin the uncached store
func (s *cacheProjectStore) Origin() core.IProjectStore {
	return s.IProjectStore
}

// purge drop the cached floor after a change
func (s *cacheProjectStore) purge(address string) {
	s.cache.Remove(s.projectKey(address))
	s.cache.Remove(allKey)
}

func (s *cacheProjectStore) projectKey(address string) string {
	return fmt.Sprintf("project:address:%s", address)
}

// callers mutate the projects they get, never hand out the cached pointer
func copyProject(p *core.Project) *core.Project {
	c := *p
	return &c
}

func copyProjects(projects map[string]*core.Project) map[string]*core.Project {
	m := make(map[string]*core.Project, len(projects))
	for k, p := range projects {
		m[k] = copyProject(p)
	}

	return m
}
