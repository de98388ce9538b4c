package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/tab-pos/models"
	"github.com/yeremiapane/tab-pos/services"
	"github.com/yeremiapane/tab-pos/utils"
	"gorm.io/gorm"
)

type ProductController struct {
	DB      *gorm.DB
	Catalog *services.MemoryCatalog
}

func NewProductController(db *gorm.DB, catalog *services.MemoryCatalog) *ProductController {
	return &ProductController{DB: db, Catalog: catalog}
}

// GetAllProducts -> sellable products only
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of products", pc.Catalog.List())
}

func (pc *ProductController) GetProductByID(c *gin.Context) {
	p, ok := pc.Catalog.Product(c.Param("product_id"))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product detail", p)
}

// CreateProduct -> manager only; the class decides the sellable and stock flags
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var body struct {
		ID       string                     `json:"id"`
		Code     string                     `json:"code"`
		Name     string                     `json:"name" binding:"required"`
		Unit     string                     `json:"unit"`
		Category string                     `json:"category"`
		Class    models.ProductClass        `json:"class" binding:"required"`
		Price    decimal.Decimal            `json:"price"`
		Steps    []models.CustomizationStep `json:"steps"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := validateProduct(body.Class, body.Price, body.Steps); err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
		return
	}

	id := body.ID
	if id == "" {
		id = uuid.NewString()
	}
	p := models.NewProduct(id, body.Name, body.Class, body.Price, body.Steps...)
	p.Code, p.Category = body.Code, body.Category
	if body.Unit != "" {
		p.Unit = body.Unit
	}

	if pc.DB != nil {
		if err := pc.DB.WithContext(c.Request.Context()).Save(&p).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}
	pc.Catalog.Put(p)

	utils.InfoLogger.Printf("Product saved: %s (class=%s)", p.Name, p.Class)
	utils.RespondJSON(c, http.StatusCreated, "Product saved", p)
}

func validateProduct(class models.ProductClass, price decimal.Decimal, steps []models.CustomizationStep) error {
	switch class {
	case models.ClassResale, models.ClassProduced, models.ClassRawMaterial:
	default:
		return fmt.Errorf("unknown product class %q", class)
	}
	if price.IsNegative() {
		return errors.New("price cannot be negative")
	}
	seen := map[string]bool{}
	for _, s := range steps {
		if s.ID == "" || seen[s.ID] {
			return fmt.Errorf("step %q needs a unique id", s.Title)
		}
		seen[s.ID] = true
		if s.Kind != models.StepSingle && s.Kind != models.StepMultiple {
			return fmt.Errorf("step %q has unknown kind %q", s.Title, s.Kind)
		}
		if len(s.Options) == 0 {
			return fmt.Errorf("step %q has no options", s.Title)
		}
	}
	return nil
}
