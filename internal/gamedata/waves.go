package gamedata

import "fmt"

// WaveConfig controls how many waves each room spawner holds and how they grow.
type WaveConfig struct {
	WavesPerSpawner      int     `json:"wavesPerSpawner"`
	SecondsBetweenWaves  float64 `json:"secondsBetweenWaves"`
	SecondsBetweenSpawns float64 `json:"secondsBetweenSpawns"`
	GrowthPerWave        int     `json:"growthPerWave"` // Extra enemies added to each later wave
}

// LoadWaveConfig loads the embedded waves.json file.
func LoadWaveConfig() (WaveConfig, error) {
	cfg, err := Load[WaveConfig]("waves.json")
	if err != nil {
		return WaveConfig{}, err
	}
	if cfg.WavesPerSpawner <= 0 {
		return WaveConfig{}, fmt.Errorf("invalid waves.json: wavesPerSpawner must be positive, got %d", cfg.WavesPerSpawner)
	}
	if cfg.GrowthPerWave < 0 {
		return WaveConfig{}, fmt.Errorf("invalid waves.json: growthPerWave must not be negative, got %d", cfg.GrowthPerWave)
	}
	return cfg, nil
}

// MustLoadWaveConfig loads the wave configuration, panicking on error.
func MustLoadWaveConfig() WaveConfig {
	cfg, err := LoadWaveConfig()
	if err != nil {
		panic(err)
	}
	return cfg
}
