package domain

var (
	MessageSuccessGetTags        = "success get tags"
	MessageSuccessGetTag         = "success get tag"
	MessageSuccessGetIngredients = "success get ingredients"
	MessageSuccessGetIngredient  = "success get ingredient"

	MessageFailedGetTags        = "failed to get tags"
	MessageFailedGetTag         = "failed to get tag"
	MessageFailedGetIngredients = "failed to get ingredients"
	MessageFailedGetIngredient  = "failed to get ingredient"

	ErrTagNotFound        = newError(ErrNotFound, "tag not found")
	ErrIngredientNotFound = newError(ErrNotFound, "ingredient not found")
)

type (
	Tag struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Slug  string `json:"slug"`
		Color string `json:"color"`
	}

	Ingredient struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}

	// IngredientFixture and TagFixture are the seed file formats.
	IngredientFixture struct {
		Name            string `json:"name" validate:"required,max=150"`
		MeasurementUnit string `json:"measurement_unit" validate:"required,max=20"`
	}

	TagFixture struct {
		Name  string `json:"name" validate:"required,max=50"`
		Slug  string `json:"slug" validate:"required,max=50"`
		Color string `json:"color" validate:"required,tagcolor"`
	}
)
