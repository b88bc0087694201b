package core

import "testing"

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(44100), WithBlockSize(256))
	if cfg.SampleRate != 44100 {
		t.Errorf("SampleRate = %v, want 44100", cfg.SampleRate)
	}

	if cfg.BlockSize != 256 {
		t.Errorf("BlockSize = %d, want 256", cfg.BlockSize)
	}
}

func TestApplyProcessorOptionsDefaults(t *testing.T) {
	cfg := ApplyProcessorOptions()
	if cfg != DefaultProcessorConfig() {
		t.Errorf("ApplyProcessorOptions() = %+v, want defaults", cfg)
	}
}

func TestProcessorOptionsIgnoreInvalid(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(-1), WithBlockSize(0), nil)
	if cfg != DefaultProcessorConfig() {
		t.Errorf("invalid options must leave defaults: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultProcessorConfig().Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	bad := ProcessorConfig{SampleRate: 0, BlockSize: 128}
	if err := bad.Validate(); err == nil {
		t.Fatal("Validate() expected error for zero sample rate")
	}

	bad = ProcessorConfig{SampleRate: 48000, BlockSize: -1}
	if err := bad.Validate(); err == nil {
		t.Fatal("Validate() expected error for negative block size")
	}
}
