package ai

import (
	"testing"
	"time"

	"github.com/YashPatkar/ShortlistAI/internal/config"
)

func TestIndependentCircuitBreakerConfigurations(t *testing.T) {
	// Each operation gets its own circuit breaker configuration

	analyzeConfig := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "gemini-2.5-flash",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      3,
			Interval:         60 * time.Second,
			Timeout:          60 * time.Second,
			MinRequests:      3,
			FailureThreshold: 0.6,
		},
	}

	classifyConfig := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "gemini-2.0-flash-lite",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      5,                // Different from analyze
			Interval:         30 * time.Second, // Different from analyze
			Timeout:          45 * time.Second, // Different from analyze
			MinRequests:      2,                // Different from analyze
			FailureThreshold: 0.7,              // Different from analyze
		},
	}

	analyzeCB := NewAICircuitBreaker("Analyze", analyzeConfig, nil)
	classifyCB := NewAICircuitBreaker("Classify", classifyConfig, nil)

	t.Run("AnalyzeCircuitBreaker", func(t *testing.T) {
		stats := analyzeCB.GetStats()

		name, ok := stats["name"].(string)
		if !ok {
			t.Fatal("Circuit breaker name not found")
		}

		expectedName := "AI-Analyze"
		if name != expectedName {
			t.Errorf("Expected circuit breaker name '%s', got '%s'", expectedName, name)
		}

		// Verify it's in closed state initially
		state, ok := stats["state"].(string)
		if !ok {
			t.Fatal("Circuit breaker state not found")
		}
		if state != "closed" {
			t.Errorf("Expected initial state 'closed', got '%s'", state)
		}

		// Verify it's enabled
		enabled, ok := stats["enabled"].(bool)
		if !ok {
			t.Fatal("Circuit breaker enabled status not found")
		}
		if !enabled {
			t.Error("Circuit breaker should be enabled")
		}
	})

	t.Run("ClassifyCircuitBreaker", func(t *testing.T) {
		stats := classifyCB.GetStats()

		name, ok := stats["name"].(string)
		if !ok {
			t.Fatal("Circuit breaker name not found")
		}

		expectedName := "AI-Classify"
		if name != expectedName {
			t.Errorf("Expected circuit breaker name '%s', got '%s'", expectedName, name)
		}
	})

	// Verify that circuit breakers are independent (different instances)
	t.Run("IndependentInstances", func(t *testing.T) {
		if analyzeCB == classifyCB {
			t.Error("Analyze and classify circuit breakers should be different instances")
		}
	})

	// Verify that health states are independent
	t.Run("IndependentHealthStates", func(t *testing.T) {
		if !analyzeCB.IsHealthy() {
			t.Error("Analyze circuit breaker should be healthy initially")
		}
		if !classifyCB.IsHealthy() {
			t.Error("Classify circuit breaker should be healthy initially")
		}
	})
}

func TestCircuitBreakerConfigurationMapping(t *testing.T) {
	// Test that configuration values are properly applied to circuit breakers

	customConfig := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "test-model",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      10,
			Interval:         120 * time.Second,
			Timeout:          90 * time.Second,
			MinRequests:      5,
			FailureThreshold: 0.8,
		},
	}

	cb := NewAICircuitBreaker("Test", customConfig, nil)

	if cb == nil {
		t.Fatal("Circuit breaker should not be nil")
	}

	stats := cb.GetStats()
	if stats == nil {
		t.Fatal("Circuit breaker stats should not be nil")
	}

	// Check that the circuit breaker has the expected operation type in its name
	name, ok := stats["name"].(string)
	if !ok {
		t.Fatal("Circuit breaker name not found")
	}

	expectedName := "AI-Test"
	if name != expectedName {
		t.Errorf("Expected circuit breaker name '%s', got '%s'", expectedName, name)
	}
}

func TestCircuitBreakerDisabled(t *testing.T) {
	// Test that circuit breaker returns nil when disabled

	disabledConfig := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "test-model",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled: false, // Disabled
		},
	}

	cb := NewAICircuitBreaker("Disabled", disabledConfig, nil)

	if cb != nil {
		t.Fatal("Circuit breaker should be nil when disabled")
	}
}
