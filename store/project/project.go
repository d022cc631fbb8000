package project

import (
	"context"

	"nftlend/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type projectStore struct {
	db *db.DB
}

// New new project store
func New(db *db.DB) core.IProjectStore {
	return &projectStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Project{})
		if err := tx.AutoMigrate(core.Project{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *projectStore) Create(ctx context.Context, tx *db.DB, project *core.Project) error {
	return tx.Update().Where("address=?", project.Address).FirstOrCreate(project).Error
}

func (s *projectStore) Find(ctx context.Context, address string) (*core.Project, error) {
	var project core.Project
	if err := s.db.View().Where("address=?", address).First(&project).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Project{Address: address}, nil
		}

		return nil, err
	}

	return &project, nil
}

func (s *projectStore) All(ctx context.Context) ([]*core.Project, error) {
	var projects []*core.Project
	if err := s.db.View().Order("id").Find(&projects).Error; err != nil {
		return nil, err
	}

	return projects, nil
}

func (s *projectStore) AllAsMap(ctx context.Context) (map[string]*core.Project, error) {
	projects, e := s.All(ctx)
	if e != nil {
		return nil, e
	}

	maps := make(map[string]*core.Project, len(projects))
	for _, p := range projects {
		maps[p.Address] = p
	}

	return maps, nil
}

func (s *projectStore) Update(ctx context.Context, tx *db.DB, project *core.Project) error {
	version := project.Version
	project.Version++

	r := tx.Update().Model(core.Project{}).Where("address=? and version=?", project.Address, version).Updates(map[string]interface{}{
		"name":        project.Name,
		"approved":    project.Approved,
		"floor_value": project.FloorValue,
		"version":     project.Version,
	})
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return core.ErrVersionConflict
	}

	return nil
}
