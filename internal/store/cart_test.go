package store

import (
	"errors"
)

func (s *StoreSuite) TestAddToCartMergesQuantity() {
	uid := s.newUser("minh")
	s.Require().NoError(s.store.AddToCart(s.ctx, uid, 7, 2))
	s.Require().NoError(s.store.AddToCart(s.ctx, uid, 7, 3))

	lines, err := s.store.GetCartItems(s.ctx, uid)
	s.Require().NoError(err)
	s.Require().Len(lines, 1)
	s.Equal(7, lines[0].ProductID)
	s.Equal(5, lines[0].Quantity)
	s.Require().NotNil(lines[0].Product)
	s.Equal("Giày sneaker", lines[0].Product.Name)
	s.Equal(1, countRows(s.T(), s.store, "cart"))
}

func (s *StoreSuite) TestAddToCartRejectsNonPositive() {
	err := s.store.AddToCart(s.ctx, 1, 7, 0)
	s.True(errors.Is(err, ErrInvalidQuantity))
}

func (s *StoreSuite) TestCartsAreIsolatedPerUser() {
	a := s.newUser("userA")
	b := s.newUser("userB")
	s.Require().NoError(s.store.AddToCart(s.ctx, a, 1, 1))
	s.Require().NoError(s.store.AddToCart(s.ctx, b, 1, 4))

	la, err := s.store.GetCartItems(s.ctx, a)
	s.Require().NoError(err)
	s.Require().Len(la, 1)
	s.Equal(1, la[0].Quantity)

	s.Require().NoError(s.store.ClearCart(s.ctx, a))
	la, err = s.store.GetCartItems(s.ctx, a)
	s.Require().NoError(err)
	s.Empty(la)

	lb, err := s.store.GetCartItems(s.ctx, b)
	s.Require().NoError(err)
	s.Len(lb, 1)
}

func (s *StoreSuite) TestUpdateQuantity() {
	uid := s.newUser("hoa")
	s.Require().NoError(s.store.AddToCart(s.ctx, uid, 9, 1))
	s.Require().NoError(s.store.AddToCart(s.ctx, uid, 10, 1))
	lines, err := s.store.GetCartItems(s.ctx, uid)
	s.Require().NoError(err)
	s.Require().Len(lines, 2)

	s.Require().NoError(s.store.UpdateQuantity(s.ctx, lines[0].ID, 4))
	s.Require().NoError(s.store.UpdateQuantity(s.ctx, lines[1].ID, 0))

	lines, err = s.store.GetCartItems(s.ctx, uid)
	s.Require().NoError(err)
	s.Require().Len(lines, 1)
	s.Equal(9, lines[0].ProductID)
	s.Equal(4, lines[0].Quantity)

	s.Require().NoError(s.store.UpdateQuantity(s.ctx, lines[0].ID, -2))
	lines, err = s.store.GetCartItems(s.ctx, uid)
	s.Require().NoError(err)
	s.Empty(lines)
}

func (s *StoreSuite) TestRemoveItem() {
	uid := s.newUser("tuan")
	s.Require().NoError(s.store.AddToCart(s.ctx, uid, 20, 2))
	lines, err := s.store.GetCartItems(s.ctx, uid)
	s.Require().NoError(err)
	s.Require().Len(lines, 1)

	s.Require().NoError(s.store.RemoveItem(s.ctx, lines[0].ID))
	lines, err = s.store.GetCartItems(s.ctx, uid)
	s.Require().NoError(err)
	s.Empty(lines)
}

func (s *StoreSuite) TestCartLineOfDeletedProductIsKept() {
	uid := s.newUser("nam")
	s.Require().NoError(s.store.AddToCart(s.ctx, uid, 2, 1))
	s.Require().NoError(s.store.AddToCart(s.ctx, uid, 4, 2))
	s.Require().NoError(s.store.DeleteProduct(s.ctx, 2))

	lines, err := s.store.GetCartItems(s.ctx, uid)
	s.Require().NoError(err)
	s.Require().Len(lines, 2)
	s.Equal(2, lines[0].ProductID)
	s.Nil(lines[0].Product)
	s.Require().NotNil(lines[1].Product)

	// Only the line with a product contributes: 2 × 320000.
	s.True(dec(640000).Equal(CartTotal(lines)))
}
