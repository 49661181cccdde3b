package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/coolfootwear/storefront/internal/entity"
)

// SeedProducts is the starter catalog written to an empty product table.
func SeedProducts() []entity.Product {
	item := func(id, title, category, brand, color, size, price, mrp, image string) entity.Product {
		return entity.Product{
			ID:          id,
			Title:       title,
			Description: title + " in " + color + ", size " + size + ".",
			Price:       decimal.RequireFromString(price),
			MRP:         decimal.RequireFromString(mrp),
			ImageURL:    image,
			Category:    category,
			Brand:       brand,
			Color:       color,
			Size:        size,
		}
	}

	return []entity.Product{
		item("shoe-001", "Air Zoom Runner", "Male", "Nike", "Black", "9", "4999", "6499", "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=400"),
		item("shoe-002", "Ultraboost Light", "Male", "Adidas", "White", "10", "8999", "11999", "https://images.unsplash.com/photo-1608231387042-66d1773070a5?w=400"),
		item("shoe-003", "Classic Leather Loafer", "Male", "Bata", "Brown", "8", "1499", "1999", "https://images.unsplash.com/photo-1614252235316-8c857d38b5f4?w=400"),
		item("shoe-004", "Court Vision Low", "Female", "Nike", "White", "6", "3695", "4295", "https://images.unsplash.com/photo-1600185365483-26d7a4cc7519?w=400"),
		item("shoe-005", "Block Heel Sandal", "Female", "Metro", "Beige", "5", "899", "1299", "https://images.unsplash.com/photo-1543163521-1bf539c55dd2?w=400"),
		item("shoe-006", "Suede Classic", "Female", "Puma", "Red", "7", "2799", "3999", "https://images.unsplash.com/photo-1608667508764-33cf0726b13a?w=400"),
		item("shoe-007", "Light-Up Sneaker", "Kids", "Skechers", "Blue", "3", "1999", "2499", "https://images.unsplash.com/photo-1514989940723-e8e51635b782?w=400"),
		item("shoe-008", "School Velcro Shoe", "Kids", "Bata", "Black", "2", "599", "799", "https://images.unsplash.com/photo-1555274175-75f4056dfd05?w=400"),
		item("shoe-009", "Trail Hiker Mid", "Male", "Woodland", "Olive", "9", "5495", "6995", "https://images.unsplash.com/photo-1520639888713-7851133b1ed0?w=400"),
		item("shoe-010", "Everyday Flip Flop", "Female", "Crocs", "Pink", "6", "99", "149", "https://images.unsplash.com/photo-1603487742131-4160ec999306?w=400"),
		item("shoe-011", "Running Pro Max", "Male", "Asics", "Grey", "10", "12999", "15999", "https://images.unsplash.com/photo-1491553895911-0055eca6402d?w=400"),
		item("shoe-012", "Ballet Flat", "Female", "Metro", "Black", "5", "1099", "1499", "https://images.unsplash.com/photo-1566150905458-1bf1fc113f0d?w=400"),
		item("shoe-013", "Kids Runner Jr", "Kids", "Adidas", "Green", "4", "2299", "2999", "https://images.unsplash.com/photo-1519415943484-9fa1873496d4?w=400"),
	}
}
