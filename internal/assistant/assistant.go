// Package assistant bridges chat requests to an external generative-text
// service. It owns nothing but prompt assembly and the outbound call; any
// failure is reduced to a fixed user-facing message by the API layer.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"sciequip-backend/config"
	"sciequip-backend/internal/model"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("assistant is not configured")

// statusLabels translates equipment statuses for the prompt.
var statusLabels = map[model.EquipmentStatus]string{
	model.StatusAvailable:   "Sẵn sàng",
	model.StatusBooked:      "Đã đặt",
	model.StatusInUse:       "Đang dùng",
	model.StatusBroken:      "Hư hỏng",
	model.StatusMaintenance: "Bảo trì",
	model.StatusLiquidated:  "Đã thanh lý",
}

// StatusLabel returns the Vietnamese display label for a status, falling
// back to the raw value.
func StatusLabel(s model.EquipmentStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Service forwards prompts to a generateContent-style endpoint.
type Service struct {
	cfg    config.AssistantConfig
	client *http.Client
}

// NewService creates and initializes a new assistant service.
func NewService(cfg config.AssistantConfig) *Service {
	return &Service{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Configured reports whether an API key is available.
func (s *Service) Configured() bool {
	return s.cfg.APIKey != ""
}

// Chat sends the user's message, prefixed with the system prompt built from
// the current store contents, and returns the model's reply verbatim.
func (s *Service) Chat(ctx context.Context, user *model.User, equipment []model.Equipment, labs []model.Lab, message string) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}

	prompt := buildPrompt(user, equipment, labs) + "\n\nCâu hỏi của người dùng:\n" + message
	return s.generate(ctx, prompt)
}

func buildPrompt(user *model.User, equipment []model.Equipment, labs []model.Lab) string {
	var equipLines []string
	for _, e := range equipment {
		notes := e.Notes
		if notes == "" {
			notes = "Không có"
		}
		equipLines = append(equipLines, fmt.Sprintf(
			"- %s (Mã: %s): Vị trí %s, Trạng thái: %s, Mô tả: %s",
			orNA(e.Name), orNA(e.Code), orNA(e.Location), StatusLabel(e.Status), notes))
	}

	var labLines []string
	for _, l := range labs {
		labLines = append(labLines, fmt.Sprintf(
			"- %s (%s): %s", orNA(l.Name), orNA(l.LocationCode), l.Description))
	}

	return fmt.Sprintf(`Bạn là trợ lý AI thông minh cho hệ thống quản lý thiết bị phòng thí nghiệm "SciEquip" của Trường Đại học Y Dược Cần Thơ.

THÔNG TIN NGƯỜI DÙNG HIỆN TẠI:
- Tên: %s
- Vai trò: %s
- Phòng ban: %s

DANH SÁCH THIẾT BỊ HIỆN CÓ:
%s

DANH SÁCH PHÒNG LAB:
%s

NHIỆM VỤ CỦA BẠN:
1. Trả lời các câu hỏi về vị trí, trạng thái và thông tin của thiết bị.
2. Hỗ trợ người dùng hiểu quy trình đăng ký, báo hỏng (nhắc họ dùng các nút chức năng trên giao diện).
3. Giải thích ngắn gọn các thuật ngữ khoa học nếu được hỏi.
4. Luôn trả lời bằng Tiếng Việt, văn phong lịch sự, ngắn gọn và hữu ích.
5. Nếu người dùng hỏi về thiết bị không có trong danh sách, hãy báo là không tìm thấy.

LƯU Ý: Bạn chỉ là trợ lý tra cứu, bạn không thể trực tiếp thực hiện hành động trên database.`,
		orDefault(user.Name, "Ẩn danh"), orDefault(string(user.Role), "USER"), orNA(user.Department),
		strings.Join(equipLines, "\n"), strings.Join(labLines, "\n"))
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// generate performs a single generateContent call.
func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request payload: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		strings.TrimSuffix(s.cfg.Endpoint, "/"), s.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	var gen generateResponse
	if err := json.Unmarshal(raw, &gen); err != nil {
		return "", fmt.Errorf("failed to unmarshal api response: %w", err)
	}
	if gen.Error != nil {
		return "", fmt.Errorf("API returned application error %d: %s", gen.Error.Code, gen.Error.Message)
	}
	if len(gen.Candidates) == 0 || len(gen.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("API response contained no candidates")
	}

	return strings.TrimSpace(gen.Candidates[0].Content.Parts[0].Text), nil
}

func orNA(s string) string {
	return orDefault(s, "N/A")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
