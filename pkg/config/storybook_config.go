package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gonewx/storybook/pkg/embedded"
	"github.com/gonewx/storybook/pkg/types"
	"gopkg.in/yaml.v3"
)

// SceneKind 场景的表现形式
type SceneKind string

const (
	KindCard     SceneKind = "card"     // 标题 + 正文 + 按钮
	KindReveal   SceneKind = "reveal"   // 逐项揭示列表，完成后出现按钮
	KindQuiz     SceneKind = "quiz"     // 选择题，隐藏的正确选项在错误选项全部尝试后出现
	KindLetter   SceneKind = "letter"   // 打字机效果的信
	KindGallery  SceneKind = "gallery"  // 回忆相册，逐页翻看
	KindProposal SceneKind = "proposal" // 揭晓问题，"是"触发庆祝，"否"按钮躲避指针
	KindSpin     SceneKind = "spin"     // 转盘：滚动、减速、停在随机一项，可以重来
	KindFinal    SceneKind = "final"    // 终幕（终点场景）
)

var knownKinds = map[SceneKind]bool{
	KindCard: true, KindReveal: true, KindQuiz: true, KindLetter: true,
	KindGallery: true, KindProposal: true, KindSpin: true, KindFinal: true,
}

// 默认节奏参数
const (
	DefaultItemDelay    = 900 * time.Millisecond
	DefaultSettleOffset = 600 * time.Millisecond
	DefaultTypingSpeed  = 50 * time.Millisecond
	DefaultExitDelay    = 1200 * time.Millisecond
)

// StorybookConfig 故事配置（场景内容和顺序）
type StorybookConfig struct {
	Title  string            `yaml:"title"`
	Scenes []SceneDescriptor `yaml:"scenes"`
}

// SceneDescriptor 单个场景的描述
//
// 字段按场景类型取用，未使用的字段被忽略。
// 内容缺失（例如相册没有条目）不是配置错误，场景挂载时会失败并显示降级场景。
type SceneDescriptor struct {
	Name    string    `yaml:"id"`      // 场景ID的配置名称
	Kind    SceneKind `yaml:"kind"`    // 表现形式
	Ambient string    `yaml:"ambient"` // 环境粒子预设名称，可为空

	Title   string `yaml:"title"`
	Body    string `yaml:"body"`
	Caption string `yaml:"caption"` // 揭示完成后显示的文字
	Button  string `yaml:"button"`  // 主按钮文字

	Items   []string     `yaml:"items"`   // 揭示条目 / 相册说明 / 转盘选项
	Images  []string     `yaml:"images"`  // 相册图片路径
	Options []QuizOption `yaml:"options"` // 选择题选项

	Accept  string `yaml:"accept"`  // 揭晓场景的"是"
	Decline string `yaml:"decline"` // 揭晓场景的"否"

	// DeclineReply 点击"否"之后按钮上显示的文字，为空时保持原文字
	DeclineReply string `yaml:"declineReply"`

	ItemDelay    time.Duration `yaml:"itemDelay"`
	BaseOffset   time.Duration `yaml:"baseOffset"`
	SettleOffset time.Duration `yaml:"settleOffset"`
	TypingSpeed  time.Duration `yaml:"typingSpeed"`
	ExitDelay    time.Duration `yaml:"exitDelay"`

	Burst       int  `yaml:"burst"`       // 完成/答对时爆发的字形数量，0 表示不爆发
	AutoAdvance bool `yaml:"autoAdvance"` // 揭示完成 ExitDelay 后自动前进（不显示按钮）

	// ID 解析后的场景ID（由 applyDefaults 填充）
	ID types.SceneID `yaml:"-"`
}

// QuizOption 选择题选项
type QuizOption struct {
	Label    string `yaml:"label"`
	Correct  bool   `yaml:"correct"`
	Response string `yaml:"response"` // 选择后的反馈
	Hidden   bool   `yaml:"hidden"`   // 在其他选项全部尝试之前隐藏
}

// LoadStorybookConfig 加载故事配置
// 以 "data/" 开头且嵌入资源可用时从嵌入资源读取，否则从磁盘读取
func LoadStorybookConfig(path string) (*StorybookConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read storybook config: %w", err)
	}
	return ParseStorybookConfig(data)
}

// ParseStorybookConfig 解析并验证故事配置
func ParseStorybookConfig(data []byte) (*StorybookConfig, error) {
	var cfg StorybookConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse storybook YAML: %w", err)
	}

	// 记录每个场景显式写出的键，显式的 0 不会被默认值覆盖
	var keys struct {
		Scenes []map[string]yaml.Node `yaml:"scenes"`
	}
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("failed to parse storybook YAML: %w", err)
	}
	applyDefaults(&cfg, keys.Scenes)

	if err := validateStorybookConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid storybook config: %w", err)
	}
	return &cfg, nil
}

// applyDefaults 填充默认值并解析场景ID
// keys[i] 是第 i 个场景在 YAML 中写出的键；时长只在键缺失时使用默认值
func applyDefaults(cfg *StorybookConfig, keys []map[string]yaml.Node) {
	for i := range cfg.Scenes {
		sd := &cfg.Scenes[i]
		sd.Name = strings.ToLower(strings.TrimSpace(sd.Name))
		sd.Kind = SceneKind(strings.ToLower(strings.TrimSpace(string(sd.Kind))))
		if id, err := types.ParseSceneID(sd.Name); err == nil {
			sd.ID = id
		}

		var present map[string]yaml.Node
		if i < len(keys) {
			present = keys[i]
		}
		defaultDuration(&sd.ItemDelay, DefaultItemDelay, present, "itemDelay")
		defaultDuration(&sd.SettleOffset, DefaultSettleOffset, present, "settleOffset")
		defaultDuration(&sd.TypingSpeed, DefaultTypingSpeed, present, "typingSpeed")
		defaultDuration(&sd.ExitDelay, DefaultExitDelay, present, "exitDelay")

		if sd.Button == "" {
			sd.Button = "Continue"
		}
	}
}

// defaultDuration 键缺失且值为 0 时填充默认值
func defaultDuration(d *time.Duration, def time.Duration, present map[string]yaml.Node, key string) {
	if _, ok := present[key]; ok || *d != 0 {
		return
	}
	*d = def
}

// validateStorybookConfig 验证结构：场景非空、ID有效且不重复、类型已知、终幕在最后
func validateStorybookConfig(cfg *StorybookConfig) error {
	if len(cfg.Scenes) == 0 {
		return fmt.Errorf("scenes cannot be empty")
	}

	seen := make(map[types.SceneID]bool, len(cfg.Scenes))
	for i, sd := range cfg.Scenes {
		if sd.ID == types.SceneUnknown {
			return fmt.Errorf("scenes[%d]: unknown scene id %q", i, sd.Name)
		}
		if seen[sd.ID] {
			return fmt.Errorf("scenes[%d]: duplicate scene id %q", i, sd.Name)
		}
		seen[sd.ID] = true

		if !knownKinds[sd.Kind] {
			return fmt.Errorf("scenes[%d] (%s): unknown kind %q", i, sd.Name, sd.Kind)
		}
		if sd.Kind == KindFinal && i != len(cfg.Scenes)-1 {
			return fmt.Errorf("scenes[%d] (%s): final scene must be the last one", i, sd.Name)
		}
		if sd.ItemDelay < 0 || sd.BaseOffset < 0 || sd.SettleOffset < 0 || sd.TypingSpeed < 0 || sd.ExitDelay < 0 {
			return fmt.Errorf("scenes[%d] (%s): durations cannot be negative", i, sd.Name)
		}
		if sd.Burst < 0 {
			return fmt.Errorf("scenes[%d] (%s): burst cannot be negative", i, sd.Name)
		}
	}
	return nil
}

// Chain 返回场景顺序
func (c *StorybookConfig) Chain() []types.SceneID {
	ids := make([]types.SceneID, 0, len(c.Scenes))
	for _, sd := range c.Scenes {
		ids = append(ids, sd.ID)
	}
	return ids
}

// Scene 按ID查找场景描述
func (c *StorybookConfig) Scene(id types.SceneID) (*SceneDescriptor, bool) {
	for i := range c.Scenes {
		if c.Scenes[i].ID == id {
			return &c.Scenes[i], true
		}
	}
	return nil, false
}

// FallbackStorybook 配置不可用时的最小故事：开场页和终幕
func FallbackStorybook() *StorybookConfig {
	cfg := &StorybookConfig{
		Title: "Storybook",
		Scenes: []SceneDescriptor{
			{
				Name:    "landing",
				Kind:    KindCard,
				Ambient: "hearts",
				Title:   "Hello",
				Body:    "Something went wrong while loading the story, but the ending is still here.",
				Button:  "Continue",
			},
			{
				Name:    "final",
				Kind:    KindFinal,
				Ambient: "sparkles",
				Title:   "Two hearts, one forever.",
			},
		},
	}
	applyDefaults(cfg, nil)
	return cfg
}

// readConfigFile 读取配置文件
func readConfigFile(path string) ([]byte, error) {
	if strings.HasPrefix(path, "data/") && embedded.IsInitialized() {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}
