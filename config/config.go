package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging            LoggingConfig `yaml:"logging"`
	Scrape             ScrapeConfig  `yaml:"scrape"`
	API                APIConfig     `yaml:"api"`
	BlogFetchBatchSize int           `yaml:"blog_fetch_batch_size"`
	Blogs              []BlogSource  `yaml:"blogs"`

	// 환경변수에서 채워지는 값들 (config.yaml 에는 두지 않는다)
	NaverCookie           string `yaml:"-"`
	NotionToken           string `yaml:"-"`
	NotionDBID            string `yaml:"-"`
	MongoURI              string `yaml:"-"`
	MongoDBName           string `yaml:"-"`
	KafkaBootstrapServers string `yaml:"-"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ScrapeConfig 는 이웃 새 글 피드 스캔 동작을 정의한다.
type ScrapeConfig struct {
	// MaxPage 는 이웃 새 글 목록을 몇 페이지까지 볼지 결정한다.
	MaxPage int `yaml:"max_page"`

	// ItemDelayMs 는 Notion 페이지 생성 시도 사이의 대기 시간(ms)이다.
	// 외부 API 를 너무 빠르게 호출하지 않기 위한 고정 간격.
	ItemDelayMs int `yaml:"item_delay_ms"`

	// PageDelayMs 는 피드 페이지 사이의 대기 시간(ms)이다.
	PageDelayMs int `yaml:"page_delay_ms"`

	// DedupeFailClosed 가 true 면 존재 확인 실패 시 해당 포스트를 건너뛴다.
	// 기본값(false)은 실패를 "없음"으로 간주한다. 일시적인 Notion 장애 시
	// 중복 생성 가능성이 있지만 파이프라인이 막히지는 않는다.
	DedupeFailClosed bool `yaml:"dedupe_fail_closed"`
}

type APIConfig struct {
	Port int `yaml:"port"`
}

// BlogSource is a single RSS blog configuration item
type BlogSource struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	RSSURL   string `yaml:"rss_url"`
	BlogType string `yaml:"blog_type"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}

	c.applyDefaults()
	c.loadEnv()
	config = &c

	Logger = NewLogger(c.Logging.Level)
}

func (c *AppConfig) applyDefaults() {
	if c.Scrape.MaxPage <= 0 {
		c.Scrape.MaxPage = 5
	}
	if c.Scrape.ItemDelayMs <= 0 {
		c.Scrape.ItemDelayMs = 300
	}
	if c.Scrape.PageDelayMs <= 0 {
		c.Scrape.PageDelayMs = 1000
	}
	if c.BlogFetchBatchSize <= 0 {
		c.BlogFetchBatchSize = 10
	}
	if c.API.Port <= 0 {
		c.API.Port = 8080
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *AppConfig) loadEnv() {
	c.NaverCookie = os.Getenv("NAVER_COOKIE")
	c.NotionToken = os.Getenv("NOTION_TOKEN")
	c.NotionDBID = os.Getenv("NOTION_DB_ID")
	c.MongoURI = os.Getenv("MONGO_URI")
	c.MongoDBName = os.Getenv("MONGO_DB_NAME")
	if c.MongoDBName == "" {
		c.MongoDBName = "blogscout"
	}
	c.KafkaBootstrapServers = os.Getenv("KAFKA_BOOTSTRAP_SERVERS")
}

// ValidateRequired 는 수집 실행에 반드시 필요한 환경변수를 검사한다.
// 네트워크 호출 전에 호출되어야 하며, 하나라도 비어 있으면 에러를 반환한다.
func (c *AppConfig) ValidateRequired() error {
	var missing []string
	if c.NaverCookie == "" {
		missing = append(missing, "NAVER_COOKIE")
	}
	if c.NotionToken == "" {
		missing = append(missing, "NOTION_TOKEN")
	}
	if c.NotionDBID == "" {
		missing = append(missing, "NOTION_DB_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}
	return nil
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
