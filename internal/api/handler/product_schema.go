package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses.
type errorResponse struct {
	Error string `json:"error"`
}

type createProductRequest struct {
	Title       string   `json:"title"       validate:"required,min=1"`
	Price       float64  `json:"price"       validate:"omitempty,gt=0"`
	Description string   `json:"description" validate:"omitempty"`
	Slug        string   `json:"slug"        validate:"omitempty"`
	Stock       int      `json:"stock"       validate:"omitempty,gte=0"`
	Sizes       []string `json:"sizes"       validate:"required,dive,required"`
	Gender      string   `json:"gender"      validate:"required,oneof=men women kid unisex"`
	Tags        []string `json:"tags"        validate:"omitempty,dive,required"`
	Images      []string `json:"images"      validate:"omitempty,dive,required"`
}

// updateProductRequest models a partial update. Pointer fields
// distinguish "absent" from a zero value; a nil or empty images slice
// leaves the image set untouched.
type updateProductRequest struct {
	Title       *string  `json:"title"       validate:"omitempty,min=1"`
	Price       *float64 `json:"price"       validate:"omitempty,gt=0"`
	Description *string  `json:"description" validate:"omitempty"`
	Slug        *string  `json:"slug"        validate:"omitempty"`
	Stock       *int     `json:"stock"       validate:"omitempty,gte=0"`
	Sizes       []string `json:"sizes"       validate:"omitempty,dive,required"`
	Gender      *string  `json:"gender"      validate:"omitempty,oneof=men women kid unisex"`
	Tags        []string `json:"tags"        validate:"omitempty,dive,required"`
	Images      []string `json:"images"      validate:"omitempty,dive,required"`
}

type listProductsQuery struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}
