package services

import (
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"time"
)

// CloudinaryResponse is the subset of the upload API response we use.
type CloudinaryResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Format    string `json:"format"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ImageUploadResult carries the hosted image location back to the handler.
type ImageUploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// UploadToCloudinary uploads an image via Cloudinary's signed upload API and
// returns the hosted URL. The signature is SHA-1 over the sorted parameter
// string plus the API secret, per Cloudinary's auth scheme.
func UploadToCloudinary(file multipart.File, header *multipart.FileHeader) (*ImageUploadResult, error) {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary is not configured")
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	signature := signCloudinary("timestamp="+timestamp, apiSecret)

	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)

	part, err := writer.CreateFormFile("file", header.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build request body: %w", err)
	}
	if _, err := part.Write(fileBytes); err != nil {
		return nil, fmt.Errorf("failed to build request body: %w", err)
	}
	for field, value := range map[string]string{
		"api_key":   apiKey,
		"timestamp": timestamp,
		"signature": signature,
	} {
		if err := writer.WriteField(field, value); err != nil {
			return nil, fmt.Errorf("failed to build request body: %w", err)
		}
	}
	writer.Close()

	url := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", cloudName)
	req, err := http.NewRequest("POST", url, &requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var uploadResp CloudinaryResponse
	if err := json.Unmarshal(body, &uploadResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if uploadResp.SecureURL == "" {
		return nil, fmt.Errorf("cloudinary upload failed: %s", uploadResp.Error.Message)
	}

	return &ImageUploadResult{
		URL:      uploadResp.SecureURL,
		PublicID: uploadResp.PublicID,
	}, nil
}

// UploadImage is the generic upload entry point (the backing host can change
// without touching handlers). Currently Cloudinary.
func UploadImage(file multipart.File, header *multipart.FileHeader) (*ImageUploadResult, error) {
	return UploadToCloudinary(file, header)
}

func signCloudinary(params, secret string) string {
	sum := sha1.Sum([]byte(params + secret))
	return fmt.Sprintf("%x", sum)
}
