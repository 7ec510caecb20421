package gorm

import (
	"github.com/doodlesbykumbi/idrepo/pkg/model"
	"github.com/doodlesbykumbi/idrepo/pkg/store"
)

func (s *StoreSuite) TestCollectionsSorted() {
	names := Collections()
	s.Contains(names, "applications")
	s.Contains(names, "security-questions")
	s.IsIncreasing(names)
}

func (s *StoreSuite) TestDeleteFromRunsCascade() {
	s.seedApplication()

	s.Require().NoError(s.repos.DeleteFrom(s.ctx, "applications", "A"))

	s.Equal(int64(0), s.count(&model.Application{}, ""))
	s.Equal(int64(0), s.count(&model.Privilege{}, "id = ?", "P"))
}

func (s *StoreSuite) TestDeleteFromUnknownCollection() {
	err := s.repos.DeleteFrom(s.ctx, "widgets", "W")
	s.ErrorIs(err, store.ErrUnknownCollection)
}

func (s *StoreSuite) TestDeleteFromEveryCollectionAcceptsAbsentKey() {
	for _, name := range Collections() {
		s.NoError(s.repos.DeleteFrom(s.ctx, name, "absent"), name)
	}
}

func (s *StoreSuite) TestSyncRegistry() {
	s.create(
		&model.ConnInstance{ID: "c1"},
		&model.ExternalResource{ID: "ldap", ConnectorID: "c1"},
		&model.ExternalResource{ID: "db", ConnectorID: "c1"},
	)

	n, err := s.repos.SyncRegistry(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, n)
	s.ElementsMatch([]string{"ldap", "db"}, s.registry.Resources("c1"))
}
