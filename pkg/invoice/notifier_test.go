package invoice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_Send(t *testing.T) {
	t.Run("successful delivery", func(t *testing.T) {
		var got request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			json.NewEncoder(w).Encode(response{Success: true})
		}))
		defer server.Close()

		notifier := NewNotifier(Config{
			Endpoint: server.URL,
			MediaURL: "https://example.com/logo.png",
		})

		err := notifier.Send(context.Background(), "9876543210", "invoice text")
		require.NoError(t, err)

		assert.Equal(t, "9876543210", got.Number)
		assert.Equal(t, "invoice text", got.Message)
		assert.Equal(t, "media", got.Type)
		assert.Equal(t, "https://example.com/logo.png", got.MediaURL)
	})

	t.Run("gateway rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(response{Success: false, Message: "number not registered"})
		}))
		defer server.Close()

		notifier := NewNotifier(Config{Endpoint: server.URL})

		err := notifier.Send(context.Background(), "9876543210", "invoice text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "number not registered")
	})

	t.Run("malformed response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>gateway timeout</html>"))
		}))
		defer server.Close()

		notifier := NewNotifier(Config{Endpoint: server.URL})

		err := notifier.Send(context.Background(), "9876543210", "invoice text")
		assert.Error(t, err)
	})

	t.Run("unreachable gateway", func(t *testing.T) {
		notifier := NewNotifier(Config{
			Endpoint: "http://127.0.0.1:1/send",
			Timeout:  time.Second,
		})

		err := notifier.Send(context.Background(), "9876543210", "invoice text")
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(response{Success: true})
		}))
		defer server.Close()

		notifier := NewNotifier(Config{Endpoint: server.URL})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := notifier.Send(ctx, "9876543210", "invoice text")
		assert.Error(t, err)
	})
}

func TestBuildMessage(t *testing.T) {
	soldAt := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)
	in := MessageInput{
		BusinessName:  "Test Travels",
		ServiceName:   "Visa Service",
		Quantity:      2,
		UnitPrice:     500,
		Total:         1000,
		Discount:      150,
		FinalCharged:  850,
		PaymentMethod: "cash",
		SoldAt:        soldAt,
	}

	message := BuildMessage(in)

	assert.Contains(t, message, "*Test Travels*")
	assert.Contains(t, message, "Invoice - 15 Mar 2025")
	assert.Contains(t, message, "Service: Visa Service")
	assert.Contains(t, message, "Quantity: 2")
	assert.Contains(t, message, "Unit Price: ₹500.00")
	assert.Contains(t, message, "Discount: ₹150.00")
	assert.Contains(t, message, "Amount Charged: ₹850.00")
	assert.Contains(t, message, "Payment Method: cash")

	// Rendering the same input twice is byte-identical
	assert.Equal(t, message, BuildMessage(in))
}

func TestBuildMessage_OmitsZeroDiscount(t *testing.T) {
	message := BuildMessage(MessageInput{
		BusinessName:  "Test Travels",
		ServiceName:   "Flight Booking",
		Quantity:      1,
		UnitPrice:     300,
		Total:         300,
		FinalCharged:  300,
		PaymentMethod: "online",
		SoldAt:        time.Now(),
	})

	assert.NotContains(t, message, "Discount:")
}
