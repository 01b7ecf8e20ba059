package customerservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с CustomerService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CustomerService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetDriver получает данные водителя клиента
func (c *Client) GetDriver(ctx context.Context, customerID int64) (*Driver, error) {
	url := fmt.Sprintf("%s/internal/customers/%d/driver", c.baseURL, customerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid customer ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrDriverNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var driver Driver
	if err := json.NewDecoder(resp.Body).Decode(&driver); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if driver.BirthDate.IsZero() {
		return nil, fmt.Errorf("%w: birth_date is missing", ErrInvalidResponse)
	}

	return &driver, nil
}

// GetDriverWithGracefulDegradation получает данные водителя с graceful degradation
// При недоступности CustomerService возвращает ErrServiceDegraded, что позволяет
// создать бронирование без проверки возраста (она повторится при выдаче автомобиля)
func (c *Client) GetDriverWithGracefulDegradation(ctx context.Context, customerID int64) (*Driver, error) {
	c.log.Info("Fetching driver profile for customer_id=%d", customerID)

	driver, err := c.GetDriver(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrDriverNotFound) {
			c.log.Info("No driver profile found for customer_id=%d", customerID)
			return nil, err
		}

		c.log.Error("CustomerService unavailable, applying graceful degradation for customer_id=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: customer_id=%d, error=%v", ErrServiceDegraded, customerID, err)
	}

	c.log.Info("Successfully fetched driver profile for customer_id=%d", customerID)
	return driver, nil
}
