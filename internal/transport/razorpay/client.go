package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://api.razorpay.com"

const RouteOrders = "/v1/orders"

const defaultTimeout = 10 * time.Second

// Client HTTP клиент API шлюза. Ключи - серверные секреты: конструктор
// отказывается создавать клиент без них, чтобы недоконфигурированное окружение
// падало на границе типа, а не в момент сетевого вызова.
type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
}

func New(keyID, keySecret string, opts ...func(*Client)) (*Client, error) {
	if keyID == "" || keySecret == "" {
		return nil, ErrMissingCredentials
	}
	c := &Client{
		baseURL:   DefaultBaseURL,
		keyID:     keyID,
		keySecret: keySecret,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WithBaseURL переопределяет адрес API. Нужен тестам.
func WithBaseURL(baseURL string) func(*Client) {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

type CreateOrderArgs struct {
	// Amount в минимальных единицах валюты.
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	// Receipt уникальный референс заказа на нашей стороне. Коллизию ресипта
	// шлюз отклоняет сам, мы её не глотаем.
	Receipt string `json:"receipt"`
}

type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder создает заказ на стороне шлюза.
// При ответе сервера со статусом отличным от http.StatusOK возвращает StatusCodeError.
//
//nolint:nonamedreturns
func (c *Client) CreateOrder(ctx context.Context, args CreateOrderArgs) (order *Order, err error) {
	payload, marshalErr := json.Marshal(args)
	if marshalErr != nil {
		return nil, fmt.Errorf("marshal order payload: %s", marshalErr.Error())
	}

	req, reqErr := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+RouteOrders, bytes.NewReader(payload),
	)
	if reqErr != nil {
		return nil, fmt.Errorf("create request: %s", reqErr.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return nil, fmt.Errorf("do request: %s", doErr.Error())
	}

	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	// Тело ошибки шлюза в ответ не попадает: оно уходит в лог на уровне сервиса.
	if resp.StatusCode != http.StatusOK {
		err = NewStatusCodeError(resp.StatusCode)
		return nil, err
	}

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		err = fmt.Errorf("read response: %s", readErr.Error())
		return nil, err
	}

	if jsonErr := json.Unmarshal(body, &order); jsonErr != nil {
		err = fmt.Errorf("parse response: %s", jsonErr.Error())
		return nil, err
	}

	return order, nil
}
