// Package types 定义共享的基础类型
package types

import "fmt"

// SceneID 场景标识符（封闭枚举）
// 场景的先后顺序不由枚举值决定，而是由故事配置中的场景列表顺序决定
type SceneID int

const (
	// SceneUnknown 未知场景（零值，不可激活）
	SceneUnknown SceneID = iota

	SceneLanding    // 开场页
	SceneTimeline   // 时间线
	SceneMemories   // 回忆相册
	SceneReasons    // 理由列表
	SceneThreeWords // 三个词
	SceneQuiz       // 小测验
	ScenePickOne    // 二选一
	SceneSpinWheel  // 转盘挑战
	ScenePrayer     // 祈愿
	SceneVow        // 誓言
	SceneLetter     // 手写信
	SceneProposal   // 求婚揭晓
	SceneFinal      // 终幕
)

// sceneNames 场景ID与配置名称的映射（配置文件中使用小写名称）
var sceneNames = map[SceneID]string{
	SceneLanding:    "landing",
	SceneTimeline:   "timeline",
	SceneMemories:   "memories",
	SceneReasons:    "reasons",
	SceneThreeWords: "threewords",
	SceneQuiz:       "quiz",
	ScenePickOne:    "pickone",
	SceneSpinWheel:  "spinwheel",
	ScenePrayer:     "prayer",
	SceneVow:        "vow",
	SceneLetter:     "letter",
	SceneProposal:   "proposal",
	SceneFinal:      "final",
}

// String 返回场景的配置名称
func (id SceneID) String() string {
	if name, ok := sceneNames[id]; ok {
		return name
	}
	return fmt.Sprintf("scene(%d)", int(id))
}

// Valid 检查场景ID是否属于封闭枚举
func (id SceneID) Valid() bool {
	_, ok := sceneNames[id]
	return ok
}

// ParseSceneID 将配置名称解析为场景ID
func ParseSceneID(name string) (SceneID, error) {
	for id, n := range sceneNames {
		if n == name {
			return id, nil
		}
	}
	return SceneUnknown, fmt.Errorf("unknown scene id %q", name)
}

// AllSceneIDs 按枚举顺序返回全部场景ID
func AllSceneIDs() []SceneID {
	ids := make([]SceneID, 0, len(sceneNames))
	for id := SceneLanding; id <= SceneFinal; id++ {
		ids = append(ids, id)
	}
	return ids
}
