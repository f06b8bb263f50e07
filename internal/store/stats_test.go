package store

import (
	"github.com/ToNga156/FinalProject/internal/models"
)

func (s *StoreSuite) TestDashboardStats() {
	a := s.newUser("hung")
	b := s.newUser("yen")

	s.Require().NoError(s.store.AddToCart(s.ctx, a, 7, 2))
	s.Require().NoError(s.store.AddToCart(s.ctx, a, 9, 1))
	kept := s.checkout(a)

	s.Require().NoError(s.store.AddToCart(s.ctx, b, 7, 1))
	cancelled := s.checkout(b)
	s.Require().NoError(s.store.UpdateOrderStatus(s.ctx, cancelled, models.StatusCancelled))

	s.Require().NoError(s.store.AddToCart(s.ctx, b, 24, 3))
	s.checkout(b)
	s.Require().NoError(s.store.DeleteProduct(s.ctx, 24))

	stats, err := s.store.GetDashboardStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(29, stats.TotalProducts)
	s.Equal(3, stats.TotalOrders)
	s.Equal(3, stats.TotalUsers)
	s.Equal(2, stats.OrdersByStatus[models.StatusPending])
	s.Equal(1, stats.OrdersByStatus[models.StatusCancelled])

	// 2 × 1100000 + 650000 + 3 × 100000; the cancelled order is excluded.
	s.True(dec(3150000).Equal(stats.Revenue), stats.Revenue.String())

	s.Require().Len(stats.ProductSales, 3)
	top := stats.ProductSales[0]
	s.Equal(24, top.ProductID)
	s.Equal("", top.Name)
	s.Equal(3, top.Units)
	s.True(dec(300000).Equal(top.Revenue))

	s.Equal(7, stats.ProductSales[1].ProductID)
	s.Equal(2, stats.ProductSales[1].Units)
	s.Equal("Giày sneaker", stats.ProductSales[1].Name)

	o, err := s.store.GetOrder(s.ctx, kept)
	s.Require().NoError(err)
	s.Equal(models.StatusPending, o.Status)
}
