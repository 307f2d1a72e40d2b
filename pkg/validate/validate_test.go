package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/plantnet/pkg/validate"
)

type seller struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"required,email"`
}

type plantInput struct {
	Name     string  `json:"name"     validate:"required,max=80"`
	Price    float64 `json:"price"    validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=0"`
	ImageURL string  `json:"imageURL" validate:"nullable,url"`
	Role     string  `json:"role"     validate:"required,in=customer,seller,admin"`
	PlantID  string  `json:"plantId"  validate:"nullable,hex24"`
	Seller   seller  `json:"seller"`
}

func valid() plantInput {
	return plantInput{
		Name:     "Rose",
		Price:    12.5,
		Quantity: 3,
		ImageURL: "https://i.ibb.co/rose.png",
		Role:     "seller",
		PlantID:  "65a1b2c3d4e5f60718293a4b",
		Seller:   seller{Name: "S", Email: "s@x.com"},
	}
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(valid())
	assert.False(t, validate.HasErrors(errs), "%v", errs)
}

func TestRequiredAndNested(t *testing.T) {
	errs := validate.Struct(plantInput{})
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "role")
	assert.Contains(t, errs, "seller.email")
	assert.NotContains(t, errs, "imageURL")
	assert.NotContains(t, errs, "plantId")
}

func TestNumericBounds(t *testing.T) {
	in := valid()
	in.Price = -1
	in.Quantity = -3
	errs := validate.Struct(&in)
	assert.Contains(t, errs, "price")
	assert.Contains(t, errs, "quantity")
}

func TestInRule(t *testing.T) {
	in := valid()
	in.Role = "superadmin"
	assert.Contains(t, validate.Struct(in), "role")

	in.Role = "admin"
	assert.NotContains(t, validate.Struct(in), "role")
}

func TestURLAndHex(t *testing.T) {
	in := valid()
	in.ImageURL = "not-a-url"
	in.PlantID = "P1"
	errs := validate.Struct(in)
	assert.Contains(t, errs, "imageURL")
	assert.Contains(t, errs, "plantId")
}

func TestMaxLength(t *testing.T) {
	in := valid()
	in.Name = strings.Repeat("a", 81)
	assert.Contains(t, validate.Struct(in), "name")

	in.Name = strings.Repeat("a", 80)
	assert.NotContains(t, validate.Struct(in), "name")
}

func TestNonStructIsIgnored(t *testing.T) {
	assert.Empty(t, validate.Struct(42))
	var nilPtr *plantInput
	assert.Empty(t, validate.Struct(nilPtr))
}
