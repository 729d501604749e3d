// Package models defines the video catalog types returned by the external
// video platform.
package models

import "time"

// Video is one published video on a channel.
type Video struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnail_url"`
	VideoURL     string    `json:"video_url"`
	PublishedAt  time.Time `json:"published_at"`
}

// ChannelVideos is a channel's recent uploads as fetched from the platform.
// FetchedAt lets clients judge staleness of a cached answer.
type ChannelVideos struct {
	Handle    string    `json:"handle"`
	Title     string    `json:"title"`
	Videos    []Video   `json:"videos"`
	FetchedAt time.Time `json:"fetched_at"`
}
