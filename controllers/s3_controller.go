package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"alumnilink_server/services"
)

// GeneratePresignedURL generates a presigned URL for profile photo uploads
func GeneratePresignedURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.FileName == "" || payload.FileType == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	url, key, err := services.GeneratePhotoUploadURL(payload.FileName, payload.FileType)
	if err != nil {
		log.Printf("Error generating pre-signed URL: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to generate pre-signed URL")
		return
	}

	writeJSON(w, map[string]string{"url": url, "fileName": key})
}

// GetPresignedReadURL generates a presigned URL for reading stored photos
func GetPresignedReadURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Key == "" {
		writeJSONError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	url, err := services.GeneratePhotoReadURL(payload.Key)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to generate read pre-signed URL")
		return
	}

	writeJSON(w, map[string]string{"url": url})
}
