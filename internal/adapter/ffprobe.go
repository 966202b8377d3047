package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
)

// VideoProber defines an interface for probing video stream dimensions
//
//go:generate mockgen -source=ffprobe.go -destination=../mocks/ffprobe.go -package=mocks -mock_names=VideoProber=MockVideoProber
type VideoProber interface {
	// ProbeDimensions returns the width and height of the first video stream
	ProbeDimensions(ctx context.Context, url string) (width, height int, err error)
}

// FFprobeClient implements VideoProber by shelling out to ffprobe
type FFprobeClient struct {
	binary string
}

// NewFFprobeClient creates a VideoProber backed by the ffprobe binary
func NewFFprobeClient() VideoProber {
	return &FFprobeClient{binary: "ffprobe"}
}

type ffprobeOutput struct {
	Streams []struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"streams"`
}

// ProbeDimensions returns the width and height of the first video stream
func (c *FFprobeClient) ProbeDimensions(ctx context.Context, url string) (int, int, error) {
	cmd := exec.CommandContext(ctx, c.binary,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "json",
		url,
	)

	out, err := cmd.Output()
	if err != nil {
		return 0, 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return 0, 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	if len(probe.Streams) == 0 || probe.Streams[0].Width <= 0 || probe.Streams[0].Height <= 0 {
		return 0, 0, fmt.Errorf("no video stream dimensions found")
	}

	return probe.Streams[0].Width, probe.Streams[0].Height, nil
}
