package gorm

import (
	"time"

	"github.com/doodlesbykumbi/idrepo/pkg/model"
)

func (s *StoreSuite) TestDeleteExpiredBatches() {
	s.create(
		&model.Batch{ID: "old", Expiry: s.now.Add(-10 * time.Second)},
		&model.Batch{ID: "new", Expiry: s.now.Add(10 * time.Second)},
	)

	n, err := s.repos.Batches.DeleteExpired(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	_, err = s.repos.Batches.Find(s.ctx, "new")
	s.NoError(err)
	s.Equal(int64(1), s.count(&model.Batch{}, ""))
}

func (s *StoreSuite) TestDeleteExpiredIsStrict() {
	s.create(&model.Batch{ID: "now", Expiry: s.now})

	n, err := s.repos.Batches.DeleteExpired(s.ctx)
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *StoreSuite) TestDeleteExpiredNothingToReap() {
	n, err := s.repos.Batches.DeleteExpired(s.ctx)
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *StoreSuite) TestRoutesInServingOrder() {
	for _, r := range []*model.SRARoute{
		{ID: "b", Name: "b", Target: "http://b", Order: 2},
		{ID: "a", Name: "a", Target: "http://a", Order: 1},
		{ID: "c", Name: "c", Target: "http://c", Order: 1},
	} {
		_, err := s.repos.Routes.Save(s.ctx, r)
		s.Require().NoError(err)
	}

	routes, err := s.repos.Routes.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(routes, 3)
	s.Equal([]string{"a", "c", "b"}, []string{routes[0].ID, routes[1].ID, routes[2].ID})
}

func (s *StoreSuite) TestHealth() {
	s.NoError(s.repos.Health.CheckConnectivity(s.ctx))
}
