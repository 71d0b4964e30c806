package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PathsConfig holds the directory layout of the processing workspace.
type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Markdown string `yaml:"markdown"`
	Images   string `yaml:"images"`
	VectorDB string `yaml:"vectordb"`
	Logs     string `yaml:"logs"`
}

// ChunkerConfig configures how documents are split into chunks.
type ChunkerConfig struct {
	Type         string `yaml:"type"`
	ChunkSize    int    `yaml:"chunk_size"`
	ChunkOverlap int    `yaml:"chunk_overlap"`
}

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible embedder.
type OpenAIEmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// QdrantConfig contains connection details for a Qdrant vector store.
type QdrantConfig struct {
	URL         string `yaml:"url"`
	APIKey      string `yaml:"api_key"`
	Collection  string `yaml:"collection"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// VectorStoreConfig selects and configures the vector store implementation.
type VectorStoreConfig struct {
	Type   string        `yaml:"type"`
	Qdrant *QdrantConfig `yaml:"qdrant,omitempty"`
}

// PipelineConfig configures the summarization pipeline run.
type PipelineConfig struct {
	Questions        []string `yaml:"questions"`
	TopK             int      `yaml:"top_k"`
	EnglishSummary   string   `yaml:"english_summary"`
	ChineseSummary   string   `yaml:"chinese_summary"`
	PreviewSentences int      `yaml:"preview_sentences"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Paths       PathsConfig       `yaml:"paths"`
	Chunker     ChunkerConfig     `yaml:"chunker"`
	Embedder    EmbedderConfig    `yaml:"embedder"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	Pipeline    PipelineConfig    `yaml:"pipeline"`
}

// DefaultQuestions is the question batch analysed when the config does not
// override pipeline.questions.
var DefaultQuestions = []string{
	"What are the key concepts in artificial intelligence?",
	"What are the fundamentals of quantum computing?",
	"What are the main points about climate change?",
	"What connections exist between these topics?",
	"What are the important ideas across all documents?",
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/docsum/config.yaml.
// If neither exists, it writes defaults to ~/.config/docsum/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// EnsureDirectories creates every workspace directory that does not yet exist.
func (c *AppConfig) EnsureDirectories() error {
	dirs := []string{
		c.Paths.Input,
		c.Paths.Output,
		c.Paths.Markdown,
		c.Paths.Images,
		c.Paths.VectorDB,
		c.Paths.Logs,
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// IndexFile returns the path of the persisted index inside the vectordb directory.
func (c *AppConfig) IndexFile() string {
	return filepath.Join(c.Paths.VectorDB, "index.json")
}

// EnglishSummaryFile returns the output path of the English aggregate summary.
func (c *AppConfig) EnglishSummaryFile() string {
	return filepath.Join(c.Paths.Output, c.Pipeline.EnglishSummary)
}

// ChineseSummaryFile returns the output path of the Chinese aggregate summary.
func (c *AppConfig) ChineseSummaryFile() string {
	return filepath.Join(c.Paths.Output, c.Pipeline.ChineseSummary)
}

// ErrorLogFile returns the path of the error log inside the logs directory.
func (c *AppConfig) ErrorLogFile() string {
	return filepath.Join(c.Paths.Logs, "error.log")
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "docsum", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Paths: PathsConfig{
			Input:    "input",
			Output:   "output",
			Markdown: filepath.Join("output", "markdown"),
			Images:   filepath.Join("output", "markdown", "images"),
			VectorDB: filepath.Join("output", "vectordb"),
			Logs:     "logs",
		},
		Chunker:     ChunkerConfig{Type: "markdown", ChunkSize: 1000, ChunkOverlap: 200},
		Embedder:    EmbedderConfig{Type: "tfidf"},
		VectorStore: VectorStoreConfig{Type: "memory"},
		Pipeline: PipelineConfig{
			Questions:        append([]string(nil), DefaultQuestions...),
			TopK:             5,
			EnglishSummary:   "summary.md",
			ChineseSummary:   "summary_chinese.md",
			PreviewSentences: 5,
		},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Paths.Input == "" {
		cfg.Paths.Input = def.Paths.Input
	}
	if cfg.Paths.Output == "" {
		cfg.Paths.Output = def.Paths.Output
	}
	if cfg.Paths.Markdown == "" {
		cfg.Paths.Markdown = def.Paths.Markdown
	}
	if cfg.Paths.Images == "" {
		cfg.Paths.Images = def.Paths.Images
	}
	if cfg.Paths.VectorDB == "" {
		cfg.Paths.VectorDB = def.Paths.VectorDB
	}
	if cfg.Paths.Logs == "" {
		cfg.Paths.Logs = def.Paths.Logs
	}
	if cfg.Chunker.ChunkSize == 0 {
		cfg.Chunker.ChunkSize = def.Chunker.ChunkSize
	}
	if cfg.Chunker.ChunkOverlap == 0 {
		cfg.Chunker.ChunkOverlap = def.Chunker.ChunkOverlap
	}
	if cfg.Embedder.Type == "openai" && cfg.Embedder.OpenAI != nil {
		if cfg.Embedder.OpenAI.BaseURL == "" {
			cfg.Embedder.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
		if cfg.Embedder.OpenAI.TimeoutSecs == 0 {
			cfg.Embedder.OpenAI.TimeoutSecs = 30
		}
	}
	if len(cfg.Pipeline.Questions) == 0 {
		cfg.Pipeline.Questions = append([]string(nil), DefaultQuestions...)
	}
	if cfg.Pipeline.TopK == 0 {
		cfg.Pipeline.TopK = def.Pipeline.TopK
	}
	if cfg.Pipeline.EnglishSummary == "" {
		cfg.Pipeline.EnglishSummary = def.Pipeline.EnglishSummary
	}
	if cfg.Pipeline.ChineseSummary == "" {
		cfg.Pipeline.ChineseSummary = def.Pipeline.ChineseSummary
	}
	if cfg.Pipeline.PreviewSentences == 0 {
		cfg.Pipeline.PreviewSentences = def.Pipeline.PreviewSentences
	}
}
