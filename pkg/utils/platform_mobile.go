//go:build mobile

package utils

// IsMobile 移动端编译时总是返回 true
// 移动端没有键盘快捷键和窗口，全屏切换等桌面功能被跳过
func IsMobile() bool {
	return true
}
