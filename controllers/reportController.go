package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"communitypulse-be/config"
	"communitypulse-be/geocode"
	"communitypulse-be/live"
	"communitypulse-be/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxPhotoBytes caps uploaded report photos at 8 MiB.
const maxPhotoBytes = 8 << 20

// reportForm carries the text fields of one submission.
type reportForm struct {
	Title         string
	Description   string
	Category      string
	LocationName  string
	StreetAddress string
	Landmark      string
}

// validateLocation checks the coordinate fields. It runs before anything
// else: a report that cannot be placed on the map is rejected first.
func validateLocation(latStr, lngStr string) (float64, float64, error) {
	if strings.TrimSpace(latStr) == "" || strings.TrimSpace(lngStr) == "" {
		return 0, 0, errors.New("Location is required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, errors.New("Invalid coordinates")
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return 0, 0, errors.New("Invalid coordinates")
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, errors.New("Invalid coordinates")
	}

	return lat, lng, nil
}

// validatePhoto checks the uploaded files: exactly one image, capped in size.
func validatePhoto(files []*multipart.FileHeader) (*multipart.FileHeader, error) {
	if len(files) == 0 {
		return nil, errors.New("A photo is required")
	}
	if len(files) > 1 {
		return nil, errors.New("Only one photo can be uploaded")
	}

	photo := files[0]
	if photo.Size > maxPhotoBytes {
		return nil, errors.New("Photo must be 8 MB or smaller")
	}
	if !strings.HasPrefix(photo.Header.Get("Content-Type"), "image/") {
		return nil, errors.New("Photo must be an image")
	}

	return photo, nil
}

// validateFields checks the text fields last, in the order the form shows them.
func validateFields(f reportForm) error {
	if f.Title == "" {
		return errors.New("Title is required")
	}
	if len(f.Title) > 200 {
		return errors.New("Title must be at most 200 characters")
	}
	if f.Description == "" {
		return errors.New("Description is required")
	}
	if len(f.Description) > 1000 {
		return errors.New("Description must be at most 1000 characters")
	}
	if !models.ValidCategory(f.Category) {
		return errors.New("Invalid category")
	}
	if f.StreetAddress == "" {
		return errors.New("Street address is required")
	}
	if f.Landmark == "" {
		return errors.New("Landmark is required")
	}
	return nil
}

// SubmitReport accepts a citizen's report: a multipart form with coordinates,
// exactly one photo, and the describing fields. Validation runs in a fixed
// order (location, photo, text fields) and the first failure is the one
// reported. Nothing is stored unless every step afterwards succeeds.
func SubmitReport(c *gin.Context) {
	lat, lng, err := validateLocation(c.PostForm("latitude"), c.PostForm("longitude"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}
	photo, err := validatePhoto(form.File["photo"])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := reportForm{
		Title:         strings.TrimSpace(c.PostForm("title")),
		Description:   strings.TrimSpace(c.PostForm("description")),
		Category:      strings.TrimSpace(c.PostForm("category")),
		LocationName:  strings.TrimSpace(c.PostForm("locationName")),
		StreetAddress: strings.TrimSpace(c.PostForm("streetAddress")),
		Landmark:      strings.TrimSpace(c.PostForm("landmark")),
	}
	if err := validateFields(fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Resolve a display name for the spot: the submitted one, else a reverse
	// geocode, else the raw coordinates.
	locationName := fields.LocationName
	if locationName == "" && geocode.Default != nil {
		gctx, gcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer gcancel()

		name, gerr := geocode.Default.ReverseLookup(gctx, lat, lng)
		if gerr != nil {
			log.Println("Reverse geocode failed:", gerr)
		} else {
			locationName = name
		}
	}
	if locationName == "" {
		locationName = fmt.Sprintf("%.4f, %.4f", lat, lng)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	imageURL, err := uploadPhoto(ctx, photo)
	if err != nil {
		log.Println("Error uploading photo:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	now := time.Now()
	issue := models.Issue{
		ID:            primitive.NewObjectID(),
		Title:         fields.Title,
		Description:   fields.Description,
		Category:      models.IssueCategory(fields.Category),
		Latitude:      lat,
		Longitude:     lng,
		LocationName:  locationName,
		StreetAddress: fields.StreetAddress,
		Landmark:      fields.Landmark,
		ImageURL:      imageURL,
		Status:        models.StatusNew,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := issueCollection().InsertOne(ctx, issue); err != nil {
		log.Println("Error inserting issue:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	live.Events.Publish(live.Event{Type: live.EventInsert, Issue: issue})

	c.JSON(http.StatusCreated, issue)
}

// uploadPhoto stores the image in the photo bucket under a collision-proof
// name and returns its public URL.
func uploadPhoto(ctx context.Context, photo *multipart.FileHeader) (string, error) {
	file, err := photo.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded photo: %w", err)
	}
	defer file.Close()

	contentType := photo.Header.Get("Content-Type")
	extension := "jpg"
	switch strings.ToLower(contentType) {
	case "image/png":
		extension = "png"
	case "image/jpeg", "image/jpg":
		extension = "jpeg"
	case "image/gif":
		extension = "gif"
	case "image/webp":
		extension = "webp"
	}

	objectName := fmt.Sprintf("reports/%s_%d.%s", uuid.NewString(), time.Now().UnixNano(), extension)

	_, err = config.StorageClient.PutObject(ctx, config.MinioBucket, objectName, file, photo.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	return config.StorageBaseURL() + "/" + objectName, nil
}
