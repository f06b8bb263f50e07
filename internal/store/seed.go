package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/ToNga156/FinalProject/internal/auth"
	"github.com/ToNga156/FinalProject/internal/models"
	"github.com/shopspring/decimal"
)

var seedCategories = []models.Category{
	{ID: 1, Name: "Áo"}, {ID: 2, Name: "Giày"}, {ID: 3, Name: "Balo"},
	{ID: 4, Name: "Mũ"}, {ID: 5, Name: "Túi"},
}

type seedProduct struct {
	id       int
	name     string
	price    int64
	img      string
	category int
}

var seedProducts = []seedProduct{
	{1, "Áo sơ mi trắng", 250000, "somitrang.jpg", 1},
	{2, "Áo thun nam", 180000, "aothunnam.jpg", 1},
	{3, "Áo khoác gió", 450000, "aokhoacgio.jpg", 1},
	{4, "Áo polo", 320000, "aopolo.jpg", 1},
	{5, "Áo len", 380000, "aolen.jpg", 1},
	{6, "Áo hoodie", 420000, "aohoodie.jpg", 1},

	{7, "Giày sneaker", 1100000, "giaysneaker.jpg", 2},
	{8, "Giày thể thao", 950000, "giaythethao.jpg", 2},
	{9, "Giày cao gót", 650000, "giaycaogot.jpg", 2},
	{10, "Giày búp bê", 480000, "giaybupbe.jpg", 2},
	{11, "Giày boot", 1200000, "giayboot.jpg", 2},
	{12, "Giày sandal", 350000, "giaysandal.jpg", 2},

	{13, "Balo thời trang", 490000, "balothoitrang.jpg", 3},
	{14, "Balo laptop", 550000, "balolaptop.jpg", 3},
	{15, "Balo du lịch", 680000, "balodulich.jpg", 3},
	{16, "Balo thể thao", 420000, "balothethao.jpg", 3},
	{17, "Balo học sinh", 380000, "balohocsinh.jpg", 3},
	{18, "Balo mini", 320000, "balomini.jpg", 3},

	{19, "Mũ lưỡi trai", 120000, "muluoitrai.jpg", 4},
	{20, "Mũ bucket", 150000, "mubucket.jpg", 4},
	{21, "Mũ snapback", 180000, "musnapback.png", 4},
	{22, "Mũ len", 200000, "mulen.jpg", 4},
	{23, "Mũ rộng vành", 250000, "murongvanh.jpg", 4},
	{24, "Mũ beanie", 100000, "mubeanie.jpg", 4},

	{25, "Túi xách nữ", 980000, "tuixachnu.jpg", 5},
	{26, "Túi đeo chéo", 450000, "tuideocheo.jpg", 5},
	{27, "Túi tote", 380000, "tuitote.jpg", 5},
	{28, "Túi mini", 320000, "tuimini.jpg", 5},
	{29, "Túi da", 1200000, "tuida.jpg", 5},
	{30, "Túi vải", 250000, "tuivai.jpg", 5},
}

// Seed inserts the reference catalog and the admin account. Existing rows
// win: nothing already present is overwritten.
func (s *Store) Seed(ctx context.Context) error {
	if err := s.withTx(ctx, func(tx *sql.Tx) error {
		return seedCatalog(ctx, tx)
	}); err != nil {
		return err
	}
	return s.seedAdmin(ctx)
}

func seedCatalog(ctx context.Context, tx *sql.Tx) error {
	for _, c := range seedCategories {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO categories (id, name) VALUES (?, ?)`, c.ID, c.Name); err != nil {
			return fmt.Errorf("failed to seed category %d: %w", c.ID, err)
		}
	}
	for _, p := range seedProducts {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO products (id, name, price, img, categoryId) VALUES (?, ?, ?, ?, ?)`,
			p.id, p.name, decimal.NewFromInt(p.price), p.img, p.category)
		if err != nil {
			return fmt.Errorf("failed to seed product %d: %w", p.id, err)
		}
	}
	return nil
}

func (s *Store) seedAdmin(ctx context.Context) error {
	var exists int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE username = ?`, s.admin.username).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}
	if exists > 0 {
		return nil
	}

	hashed, err := auth.HashPassword(s.admin.password)
	if err != nil {
		return err
	}
	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO users (username, password, role)
		SELECT ?, ?, ?
		WHERE NOT EXISTS (SELECT 1 FROM users WHERE username = ?)`,
		s.admin.username, hashed, models.RoleAdmin, s.admin.username)
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	slog.Info("Seeded admin user", "username", s.admin.username)
	return nil
}
