package repository

import "github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/domain"

// DefaultProducts is written to an empty store on first load.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{
			ID:            "1",
			Name:          "Elegant Pink Ethnic Kurta",
			Description:   "Beautiful pink ethnic wear kurta perfect for festivals and occasions. Made with high-quality cotton fabric.",
			Price:         899,
			OriginalPrice: domain.Float(1299),
			Image:         "/assets/product-1.jpg",
			Category:      "Women's Clothing",
			Rating:        4.5,
			Reviews:       124,
			InStock:       true,
			Discount:      domain.Int(31),
		},
		{
			ID:            "2",
			Name:          "Casual Blue Shirt",
			Description:   "Stylish men's casual shirt in premium blue color. Perfect for office or casual outings.",
			Price:         599,
			OriginalPrice: domain.Float(799),
			Image:         "/assets/product-2.jpg",
			Category:      "Men's Clothing",
			Rating:        4.2,
			Reviews:       89,
			InStock:       true,
			Discount:      domain.Int(25),
		},
		{
			ID:            "3",
			Name:          "Trendy White Pink Sneakers",
			Description:   "Comfortable and stylish sneakers in white and pink combination. Perfect for daily wear.",
			Price:         1299,
			OriginalPrice: domain.Float(1699),
			Image:         "/assets/product-3.jpg",
			Category:      "Footwear",
			Rating:        4.7,
			Reviews:       203,
			InStock:       true,
			Discount:      domain.Int(24),
		},
	}
}
