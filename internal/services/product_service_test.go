package services

import (
	"errors"
	"math"
	"testing"

	"tiendaBack/internal/models"
)

func TestValidateProduct(t *testing.T) {
	cases := []struct {
		name    string
		product models.Product
		want    error
	}{
		{"valid", models.Product{Name: "Polo", Price: 29.9}, nil},
		{"free item", models.Product{Name: "Sticker", Price: 0}, nil},
		{"blank name", models.Product{Name: "  ", Price: 10}, models.ErrInvalidProduct},
		{"negative price", models.Product{Name: "Polo", Price: -1}, models.ErrInvalidPrice},
		{"NaN price", models.Product{Name: "Polo", Price: math.NaN()}, models.ErrInvalidPrice},
		{"infinite price", models.Product{Name: "Polo", Price: math.Inf(1)}, models.ErrInvalidPrice},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := validateProduct(tc.product); !errors.Is(err, tc.want) {
				t.Errorf("validateProduct(%+v) = %v, want %v", tc.product, err, tc.want)
			}
		})
	}
}
