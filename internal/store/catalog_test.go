package store

import (
	"strings"

	"github.com/ToNga156/FinalProject/internal/models"
)

func seedProductModel() models.Product {
	return models.Product{Name: "Sổ tay", Price: dec(45000), Image: "sotay.jpg", CategoryID: 1}
}

func (s *StoreSuite) TestAddCategoryTakesNextID() {
	id, err := s.store.AddCategory(s.ctx, "Sách")
	s.Require().NoError(err)
	s.Equal(6, id)

	// Ids follow the maximum, not the row count.
	s.Require().NoError(s.store.DeleteCategory(s.ctx, 3))
	id, err = s.store.AddCategory(s.ctx, "Kính")
	s.Require().NoError(err)
	s.Equal(7, id)

	c, err := s.store.GetCategory(s.ctx, 7)
	s.Require().NoError(err)
	s.Equal("Kính", c.Name)
}

func (s *StoreSuite) TestRenameCategory() {
	s.Require().NoError(s.store.RenameCategory(s.ctx, 4, "Nón"))
	categories, err := s.store.ListCategories(s.ctx)
	s.Require().NoError(err)
	s.Len(categories, 5)
	s.Equal("Nón", categories[3].Name)
}

func (s *StoreSuite) TestDeleteCategoryCascadesToProducts() {
	s.Require().NoError(s.store.DeleteCategory(s.ctx, 2))

	products, err := s.store.ListByCategory(s.ctx, 2)
	s.Require().NoError(err)
	s.Empty(products)

	c, err := s.store.GetCategory(s.ctx, 2)
	s.Require().NoError(err)
	s.Nil(c)

	all, err := s.store.ListProducts(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 24)
}

func (s *StoreSuite) TestProductCRUD() {
	id, err := s.store.AddProduct(s.ctx, seedProductModel())
	s.Require().NoError(err)
	s.Equal(31, id)

	p := s.product(id)
	s.Equal("Sổ tay", p.Name)
	s.True(dec(45000).Equal(p.Price))

	p.Price = dec(50000)
	p.Name = "Sổ tay da"
	s.Require().NoError(s.store.UpdateProduct(s.ctx, *p))
	p = s.product(id)
	s.Equal("Sổ tay da", p.Name)
	s.True(dec(50000).Equal(p.Price))

	s.Require().NoError(s.store.DeleteProduct(s.ctx, id))
	gone, err := s.store.GetProduct(s.ctx, id)
	s.Require().NoError(err)
	s.Nil(gone)
}

func (s *StoreSuite) TestSearchByNameOrCategory() {
	// "Balo" matches all six products of category 3 by category name.
	products, err := s.store.SearchByNameOrCategory(s.ctx, "Balo")
	s.Require().NoError(err)
	s.Len(products, 6)

	// "len" matches "Áo len" and "Mũ len" by product name only.
	products, err = s.store.SearchByNameOrCategory(s.ctx, "len")
	s.Require().NoError(err)
	var names []string
	for _, p := range products {
		names = append(names, p.Name)
	}
	s.ElementsMatch([]string{"Áo len", "Mũ len"}, names)

	products, err = s.store.SearchByNameOrCategory(s.ctx, "không có")
	s.Require().NoError(err)
	s.Empty(products)
}

func (s *StoreSuite) TestFilterByNameAndPriceRange() {
	products, err := s.store.FilterProducts(s.ctx, models.ProductFilter{
		Name: ptr("Áo"),
		Min:  ptr(dec(100000)),
		Max:  ptr(dec(300000)),
	})
	s.Require().NoError(err)
	s.Require().NotEmpty(products)
	for _, p := range products {
		s.True(strings.Contains(p.Name, "Áo"), p.Name)
		s.True(p.Price.GreaterThanOrEqual(dec(100000)), p.Name)
		s.True(p.Price.LessThanOrEqual(dec(300000)), p.Name)
	}
	// Áo sơ mi trắng 250000, Áo thun nam 180000.
	s.Len(products, 2)
}

func (s *StoreSuite) TestFilterBoundsAreIndependent() {
	all, err := s.store.FilterProducts(s.ctx, models.ProductFilter{})
	s.Require().NoError(err)
	s.Len(all, 30)

	blank, err := s.store.FilterProducts(s.ctx, models.ProductFilter{Name: ptr("   ")})
	s.Require().NoError(err)
	s.Len(blank, 30)

	expensive, err := s.store.FilterProducts(s.ctx, models.ProductFilter{Min: ptr(dec(1100000))})
	s.Require().NoError(err)
	s.Len(expensive, 3) // sneaker, boot, túi da

	cheap, err := s.store.FilterProducts(s.ctx, models.ProductFilter{Max: ptr(dec(120000))})
	s.Require().NoError(err)
	s.Len(cheap, 2) // mũ lưỡi trai, mũ beanie

	// The store does not reorder an inverted range; it simply matches nothing.
	none, err := s.store.FilterProducts(s.ctx, models.ProductFilter{Min: ptr(dec(500000)), Max: ptr(dec(100000))})
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *StoreSuite) TestSetProductImage() {
	s.Require().NoError(s.store.SetProductImage(s.ctx, 7, "b1e7c2f0.jpg"))
	s.Equal("b1e7c2f0.jpg", s.product(7).Image)

	s.ErrorIs(s.store.SetProductImage(s.ctx, 999, "x.jpg"), ErrNotFound)
}
