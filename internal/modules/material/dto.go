package material

type CreateMaterialRequest struct {
	Title string `form:"title" binding:"required"`
}

type UpdateMaterialRequest struct {
	Title string `form:"title"`
}
