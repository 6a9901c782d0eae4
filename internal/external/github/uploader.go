package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jinhae8971/stock-dashboard/pkg/config"
	"github.com/jinhae8971/stock-dashboard/pkg/httputil"
	"github.com/jinhae8971/stock-dashboard/pkg/logger"
)

const defaultBaseURL = "https://api.github.com"

// Uploader pushes the dashboard JSON straight through the GitHub
// Contents API: git push 없이 파일만 갱신한다.
// ⭐ SSOT: GitHub API 호출은 여기서만
type Uploader struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cfg        config.GitHubConfig
	baseURL    string
}

// NewUploader creates a new GitHub Contents API uploader
func NewUploader(httpClient *httputil.Client, log *logger.Logger, cfg config.GitHubConfig) *Uploader {
	return &Uploader{
		httpClient: httpClient,
		logger:     log,
		cfg:        cfg,
		baseURL:    defaultBaseURL,
	}
}

// WithBaseURL overrides the API base URL (테스트용)
func (u *Uploader) WithBaseURL(base string) *Uploader {
	u.baseURL = base
	return u
}

// Enabled reports whether upload credentials are configured
func (u *Uploader) Enabled() bool {
	return u.cfg.Token != ""
}

type contentsRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
}

// Upload writes content to the configured repository path. 기존 파일이
// 있으면 SHA를 조회해 업데이트로 처리한다.
func (u *Uploader) Upload(ctx context.Context, content []byte, message string) error {
	if !u.Enabled() {
		return fmt.Errorf("GITHUB_TOKEN not configured")
	}

	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s",
		u.baseURL, u.cfg.Owner, u.cfg.Repo, u.cfg.FilePath)

	// 업데이트 시 필수인 기존 파일 SHA 조회 (실패해도 신규 생성으로 진행)
	sha, err := u.fetchSHA(ctx, url)
	if err != nil {
		u.logger.WithError(err).Warn("기존 파일 SHA 조회 실패: 신규 생성으로 진행")
	}

	body := contentsRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		SHA:     sha,
	}

	req, err := u.newRequest(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("contents upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("contents upload failed: status %d: %s", resp.StatusCode, respBody)
	}

	u.logger.WithFields(map[string]interface{}{
		"repo":   u.cfg.Owner + "/" + u.cfg.Repo,
		"path":   u.cfg.FilePath,
		"status": resp.StatusCode,
	}).Info("GitHub API 업로드 완료")
	return nil
}

// fetchSHA looks up the current blob SHA of the target file
func (u *Uploader) fetchSHA(ctx context.Context, url string) (string, error) {
	req, err := u.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("SHA lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil // 파일 없음: 신규 생성
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("SHA lookup failed: status %d", resp.StatusCode)
	}

	var payload struct {
		SHA string `json:"sha"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode SHA response: %w", err)
	}

	return payload.SHA, nil
}

func (u *Uploader) newRequest(ctx context.Context, method, url string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", method, err)
	}

	req.Header.Set("Authorization", "token "+u.cfg.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	return req, nil
}
