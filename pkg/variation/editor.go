package variation

import (
	"errors"
	"strconv"
	"time"
)

// ==================== 弹窗状态机 ====================

// DialogState 弹窗状态
// 用带草稿的状态值而不是 isOpen + isEditing 两个布尔，
// 杜绝 "在编辑但草稿是空的" 这类非法组合
type DialogState int

const (
	DialogClosed  DialogState = iota // 关闭
	DialogAdding                     // 新增中
	DialogEditing                    // 编辑中
)

// ErrDialogClosed 弹窗没开时调 Commit/UpdateDraft
var ErrDialogClosed = errors.New("variation dialog is not open")

// ==================== Editor ====================

// Editor 规格编辑器
// 持有父表单的规格列表和当前弹窗草稿；非并发安全，单个表单实例内使用
type Editor struct {
	variations []Variation

	state DialogState
	draft Variation // 仅 state != DialogClosed 时有意义

	lastID int64 // 上一次发出的 id，保证同毫秒内连续新增 id 仍唯一
}

// NewEditor 创建编辑器，initial 是编辑模式下已保存的规格
func NewEditor(initial []Variation) *Editor {
	e := &Editor{}
	e.variations = append(e.variations, initial...)
	return e
}

// Variations 当前规格列表的副本 (提交表单时序列化进载荷)
func (e *Editor) Variations() []Variation {
	out := make([]Variation, len(e.variations))
	copy(out, e.variations)
	return out
}

// State 当前弹窗状态
func (e *Editor) State() DialogState {
	return e.state
}

// Draft 当前草稿副本；弹窗关闭时返回 false
func (e *Editor) Draft() (Variation, bool) {
	if e.state == DialogClosed {
		return Variation{}, false
	}
	return e.draft, true
}

// ==================== 操作 ====================

// OpenAdd 打开新增弹窗，草稿清零
func (e *Editor) OpenAdd() {
	e.state = DialogAdding
	e.draft = Variation{DiscountType: "percentage"}
}

// OpenEdit 打开编辑弹窗，草稿取所选规格的拷贝
// id 不在列表里则视为无效操作，状态不变
func (e *Editor) OpenEdit(id string) bool {
	for _, v := range e.variations {
		if v.ID == id {
			e.state = DialogEditing
			e.draft = v
			return true
		}
	}
	return false
}

// UpdateDraft 修改打开中的草稿，只改内存不做校验
func (e *Editor) UpdateDraft(mutate func(*Variation)) error {
	if e.state == DialogClosed {
		return ErrDialogClosed
	}
	mutate(&e.draft)
	return nil
}

// Close 关弹窗丢弃草稿 (等价于隐式回滚)
func (e *Editor) Close() {
	e.state = DialogClosed
	e.draft = Variation{}
}

// Commit 提交草稿
// 校验失败返回全部违反项、弹窗保持打开、草稿不动；
// 成功则新增 (生成新 id 追加) 或替换 (按草稿 id 匹配)，然后关弹窗清草稿
func (e *Editor) Commit() []error {
	if e.state == DialogClosed {
		return []error{ErrDialogClosed}
	}

	if errs := Validate(e.draft); len(errs) > 0 {
		return errs
	}

	switch e.state {
	case DialogAdding:
		v := e.draft
		v.ID = e.nextID()
		e.variations = append(e.variations, v)
	case DialogEditing:
		for i := range e.variations {
			if e.variations[i].ID == e.draft.ID {
				e.variations[i] = e.draft
				break
			}
		}
	}

	e.Close()
	return nil
}

// Remove 按 id 移除规格，无确认步骤：规格此时还没持久化，删错了重加就是
func (e *Editor) Remove(id string) {
	kept := e.variations[:0]
	for _, v := range e.variations {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	e.variations = kept
}

// nextID 毫秒时间戳 id；同毫秒内连续生成时单调递增保证唯一
func (e *Editor) nextID() string {
	id := time.Now().UnixMilli()
	if id <= e.lastID {
		id = e.lastID + 1
	}
	e.lastID = id
	return strconv.FormatInt(id, 10)
}
