package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"tiendaBack/internal/models"
	"tiendaBack/internal/services"
	"tiendaBack/utils"
)

// ProductUploadDir holds uploaded catalog images. The orphan cleaner sweeps
// the same directory.
const ProductUploadDir = "cmd/uploads/products"

type ProductHandler struct {
	Service *services.ProductService
}

func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := q.Get("q")
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	products, total, err := h.Service.GetProducts(r.Context(), search, limit, offset)
	if err != nil {
		http.Error(w, "Failed to get products", http.StatusInternalServerError)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	respondJSON(w, http.StatusOK, models.ProductListResponse{Products: products, Total: total})
}

func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := h.Service.GetProductByID(r.Context(), id)
	if errors.Is(err, models.ErrProductNotFound) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to get product", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil { // 32MB
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	product, err := parseProductForm(r)
	if errors.Is(err, models.ErrInvalidProduct) {
		http.Error(w, "Product name is required", http.StatusBadRequest)
		return
	}
	if errors.Is(err, models.ErrInvalidPrice) {
		http.Error(w, "Invalid price", http.StatusBadRequest)
		return
	}

	imageURL, err := h.saveProductImage(r)
	if err != nil {
		http.Error(w, "Failed to save image", http.StatusInternalServerError)
		return
	}
	if imageURL != "" {
		product.Image = imageURL
	}

	created, err := h.Service.CreateProduct(r.Context(), product)
	if isDuplicateEntryError(err) {
		http.Error(w, "Product name already exists", http.StatusConflict)
		return
	}
	if err != nil {
		log.Printf("Failed to create product: %v", err)
		http.Error(w, "Failed to create product", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	product, err := h.Service.GetProductByID(r.Context(), id)
	if errors.Is(err, models.ErrProductNotFound) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to get product", http.StatusInternalServerError)
		return
	}

	if v, ok := r.MultipartForm.Value["name"]; ok && len(v) > 0 {
		product.Name = strings.TrimSpace(v[0])
	}
	if v, ok := r.MultipartForm.Value["price"]; ok && len(v) > 0 {
		price, err := strconv.ParseFloat(v[0], 64)
		if err != nil {
			http.Error(w, "Invalid price", http.StatusBadRequest)
			return
		}
		product.Price = price
	}
	if v, ok := r.MultipartForm.Value["description"]; ok && len(v) > 0 {
		product.Description = v[0]
	}

	imageURL, err := h.saveProductImage(r)
	if err != nil {
		http.Error(w, "Failed to save image", http.StatusInternalServerError)
		return
	}
	if imageURL != "" {
		product.Image = imageURL
	}

	updated, err := h.Service.UpdateProduct(r.Context(), product)
	if errors.Is(err, models.ErrInvalidProduct) || errors.Is(err, models.ErrInvalidPrice) {
		http.Error(w, "Invalid product payload", http.StatusBadRequest)
		return
	}
	if errors.Is(err, models.ErrProductNotFound) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to update product", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	err = h.Service.DeleteProduct(r.Context(), id)
	if errors.Is(err, models.ErrProductNotFound) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to delete product", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ProductHandler) ServeProductImage(w http.ResponseWriter, r *http.Request) {
	filename := getParam(r, "filename")
	if filename == "" {
		http.Error(w, "filename is required", http.StatusBadRequest)
		return
	}
	if filepath.Base(filename) != filename || filename == "." || filename == ".." {
		http.Error(w, "invalid filename", http.StatusBadRequest)
		return
	}
	imagePath := filepath.Join(ProductUploadDir, filename)

	if _, err := os.Stat(imagePath); os.IsNotExist(err) {
		http.Error(w, "image not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", contentTypeForExt(filepath.Ext(imagePath)))
	http.ServeFile(w, r, imagePath)
}

// parseProductForm reads the admin panel's multipart fields. Price must be a
// plain number ("29.90"), not the display text.
func parseProductForm(r *http.Request) (models.Product, error) {
	var p models.Product

	p.Name = strings.TrimSpace(r.FormValue("name"))
	if p.Name == "" {
		return models.Product{}, models.ErrInvalidProduct
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return models.Product{}, models.ErrInvalidPrice
	}
	p.Price = price

	p.Description = r.FormValue("description")
	p.Image = strings.TrimSpace(r.FormValue("image"))
	return p, nil
}

// saveProductImage stores the uploaded "image" file under the local uploads
// dir and mirrors it to S3 when the bucket is configured. Returns the public
// URL, or "" when the form carried no file.
func (h *ProductHandler) saveProductImage(r *http.Request) (string, error) {
	if r.MultipartForm == nil {
		return "", nil
	}
	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		return "", nil
	}
	fileHeader := files[0]

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	timestamp := time.Now().UnixNano()
	ext := filepath.Ext(fileHeader.Filename)
	imageName := fmt.Sprintf("product_image_%d%s", timestamp, ext)

	if err := os.MkdirAll(ProductUploadDir, 0755); err != nil {
		return "", err
	}
	savePath := filepath.Join(ProductUploadDir, imageName)
	if err := os.WriteFile(savePath, data, 0644); err != nil {
		return "", err
	}

	if utils.S3Enabled() {
		url, err := utils.UploadFileToS3(data, imageName, "products")
		if err != nil {
			log.Printf("S3 upload failed, serving local copy: %v", err)
			return fmt.Sprintf("/images/products/%s", imageName), nil
		}
		return url, nil
	}

	return fmt.Sprintf("/images/products/%s", imageName), nil
}

func contentTypeForExt(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
