package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/TakatsuMeow/voxuno/game/engine"
	"github.com/TakatsuMeow/voxuno/game/service"
)

var (
	ErrRulesNotFound = errors.New("rules preset not found")
	ErrInvalidRules  = errors.New("invalid rules preset")
)

// Manager handles rules preset loading and caching
type Manager struct {
	configDir    string
	defaultRules *engine.Rules
	presets      map[string]*engine.Rules
	mu           sync.RWMutex
}

// NewManager creates a new rules preset manager. The directory may be empty
// or missing; the built-in classic rules are always available as default.
func NewManager(configDir string) (*Manager, error) {
	m := &Manager{
		configDir: configDir,
		presets:   make(map[string]*engine.Rules),
	}

	if configDir != "" {
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	m.loadDefaultRules()
	return m, nil
}

// LoadRules loads a rules preset by name
func (m *Manager) LoadRules(name string) (*engine.Rules, error) {
	m.mu.RLock()
	if rules, exists := m.presets[name]; exists {
		m.mu.RUnlock()
		return rules, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if rules, exists := m.presets[name]; exists {
		return rules, nil
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	data, err := os.ReadFile(filepath.Join(m.configDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrRulesNotFound
		}
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var rules engine.Rules
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}

	if err := engine.ValidateRules(&rules); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}

	m.presets[name] = &rules
	return &rules, nil
}

// ListRules returns information about all available rules presets,
// including the built-in default.
func (m *Manager) ListRules() ([]*service.RulesInfo, error) {
	infos := []*service.RulesInfo{rulesInfo("", m.GetDefault())}

	if m.configDir == "" {
		return infos, nil
	}

	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		if os.IsNotExist(err) {
			return infos, nil
		}
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")
		rules, err := m.LoadRules(name)
		if err != nil {
			// Skip unreadable or invalid presets
			continue
		}
		info := rulesInfo(entry.Name(), rules)
		info.RulesID = name
		infos = append(infos, info)
	}

	return infos, nil
}

// GetDefault returns the default rules preset.
func (m *Manager) GetDefault() *engine.Rules {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultRules
}

// SetDefault sets the default rules preset by name.
func (m *Manager) SetDefault(name string) error {
	rules, err := m.LoadRules(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultRules = rules
	return nil
}

// SaveRules saves a rules preset to disk.
func (m *Manager) SaveRules(name string, rules *engine.Rules) error {
	if err := engine.ValidateRules(rules); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}
	if m.configDir == "" {
		return fmt.Errorf("no config directory configured")
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rules: %w", err)
	}

	if err := os.WriteFile(filepath.Join(m.configDir, filename), data, 0644); err != nil {
		return fmt.Errorf("failed to write rules file: %w", err)
	}

	m.mu.Lock()
	m.presets[name] = rules
	m.mu.Unlock()

	return nil
}

// RefreshCache drops all cached presets so the next load re-reads disk.
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.presets = make(map[string]*engine.Rules)
	m.loadDefaultRulesLocked()
}

// loadDefaultRules picks the default: a "classic.json" preset if present,
// otherwise the built-in classic rules.
func (m *Manager) loadDefaultRules() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadDefaultRulesLocked()
}

func (m *Manager) loadDefaultRulesLocked() {
	m.defaultRules = engine.DefaultRules()

	if m.configDir == "" {
		return
	}
	data, err := os.ReadFile(filepath.Join(m.configDir, "classic.json"))
	if err != nil {
		return
	}
	var rules engine.Rules
	if err := json.Unmarshal(data, &rules); err != nil {
		return
	}
	if engine.ValidateRules(&rules) == nil {
		m.defaultRules = &rules
		m.presets["classic"] = &rules
	}
}

func rulesInfo(filename string, rules *engine.Rules) *service.RulesInfo {
	return &service.RulesInfo{
		Filename:    filename,
		RulesID:     rules.Name,
		Name:        rules.Name,
		Description: rules.Description,
		HandSize:    rules.HandSize,
		MinPlayers:  rules.MinPlayers,
	}
}
