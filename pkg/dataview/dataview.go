// Package dataview 实现后台列表页通用的数据表格控制器。
//
// 控制器只管一页数据的视图状态 (排序 / 本地过滤 / 列显隐 / 勾选 / 分页窗口)，
// 翻页和删除这类要打接口的动作以 intent 形式抛给 Host，
// Host 请求完成后再把新的一页数据灌回来。totalCount 永远以服务端为准。
package dataview

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Record 表格里的一行，字段名 -> 展示值，必须带字符串 "id"
type Record map[string]any

// ID 取行 id；非字符串值按字面量转字符串兜底
func (r Record) ID() string {
	if s, ok := r["id"].(string); ok {
		return s
	}
	if v, ok := r["id"]; ok {
		return fmt.Sprint(v)
	}
	return ""
}

// Column 列定义
type Column struct {
	ID     string // accessor 字段名
	Header string // 表头文案
}

// SortRule 排序规则
type SortRule struct {
	Field string
	Desc  bool
}

// 允许的每页行数档位
var pageSizeOptions = map[int]bool{10: true, 20: true, 50: true}

// DefaultPageSize 默认每页行数
const DefaultPageSize = 10

// ==================== Host ====================

// Host 宿主回调：控制器发 intent，宿主负责真正的远程调用
// FetchPage 完成后调 Reload；DeleteOne/DeleteMany 完成后调 FinishDelete 并重新拉当前页
type Host interface {
	FetchPage(pageIndex, pageSize int)
	DeleteOne(id string)
	DeleteMany(ids []string)
}

// ==================== 待确认删除 ====================

// 删除要经过确认弹窗，pending 用带数据的状态值表达，取消时整组丢弃
type pendingDelete struct {
	ids []string // 单删时长度为 1
}

// BodyState 表体状态，三态互斥，优先级 loading > error > 数据
type BodyState int

const (
	BodyPopulated BodyState = iota // 有行可渲染
	BodyEmpty                      // "No results." 行
	BodyLoading                    // 加载占位
	BodyError                      // 整个表体替换成错误信息
)

// ==================== Controller ====================

// Controller 表格控制器；单 UI 线程事件驱动，不做锁
type Controller struct {
	host     Host
	columns  []Column
	editPath string

	// 服务端喂进来的当前页数据
	records    []Record
	totalCount int64

	// 视图状态
	sortRules     []SortRule
	columnFilters map[string]string
	hiddenColumns map[string]bool
	selected      map[string]bool
	globalFilter  string
	pageIndex     int
	pageSize      int

	loading   bool
	loadError string
	deleting  bool
	pending   *pendingDelete
}

// Options 控制器配置
type Options struct {
	Columns  []Column
	EditPath string // 编辑跳转的基础路径，点编辑时拼 "/{id}"
	PageSize int    // 0 取默认
}

// NewController 创建控制器
func NewController(host Host, opts Options) *Controller {
	pageSize := opts.PageSize
	if !pageSizeOptions[pageSize] {
		pageSize = DefaultPageSize
	}
	return &Controller{
		host:          host,
		columns:       opts.Columns,
		editPath:      opts.EditPath,
		columnFilters: make(map[string]string),
		hiddenColumns: make(map[string]bool),
		selected:      make(map[string]bool),
		pageSize:      pageSize,
	}
}

// ==================== 数据装载 ====================

// SetLoading 标记加载中 (宿主发起请求前调)
func (c *Controller) SetLoading() {
	c.loading = true
	c.loadError = ""
}

// SetError 列表加载失败，表体整体换成错误信息；分页过滤等控件保持可用
func (c *Controller) SetError(message string) {
	c.loading = false
	c.loadError = message
}

// Reload 服务端返回一页数据后整体替换
// 勾选集收敛到新页面的 id 范围内，翻页不会把旧页的勾选悄悄带过来
func (c *Controller) Reload(records []Record, totalCount int64) {
	c.records = records
	c.totalCount = totalCount
	c.loading = false
	c.loadError = ""

	onPage := make(map[string]bool, len(records))
	for _, r := range records {
		onPage[r.ID()] = true
	}
	for id := range c.selected {
		if !onPage[id] {
			delete(c.selected, id)
		}
	}
}

// ==================== 本地视图操作 ====================

// SetGlobalFilter 全局过滤：只筛已加载的这一页，不发请求，不动 pageIndex
// (和服务端分页叠加是历史行为，保留)
func (c *Controller) SetGlobalFilter(text string) {
	c.globalFilter = text
}

// SetColumnFilter 单列过滤，value 为空串清掉
func (c *Controller) SetColumnFilter(field, value string) {
	if value == "" {
		delete(c.columnFilters, field)
		return
	}
	c.columnFilters[field] = value
}

// SetSort 设置排序规则 (多列按顺序比较)，只重排已加载行
func (c *Controller) SetSort(rules ...SortRule) {
	c.sortRules = rules
}

// ToggleColumnVisibility 列显隐
func (c *Controller) ToggleColumnVisibility(field string, visible bool) {
	if visible {
		delete(c.hiddenColumns, field)
		return
	}
	c.hiddenColumns[field] = true
}

// VisibleColumns 当前可见列
func (c *Controller) VisibleColumns() []Column {
	out := make([]Column, 0, len(c.columns))
	for _, col := range c.columns {
		if !c.hiddenColumns[col.ID] {
			out = append(out, col)
		}
	}
	return out
}

// matches 行是否通过全局过滤 + 列过滤
// 全局过滤对所有字符串字段做大小写不敏感的子串匹配
func (c *Controller) matches(r Record) bool {
	if c.globalFilter != "" {
		search := strings.ToLower(c.globalFilter)
		hit := false
		for _, v := range r {
			if s, ok := v.(string); ok && strings.Contains(strings.ToLower(s), search) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	for field, want := range c.columnFilters {
		s, ok := r[field].(string)
		if !ok || !strings.Contains(strings.ToLower(s), strings.ToLower(want)) {
			return false
		}
	}
	return true
}

// VisibleRows 过滤 + 排序后实际渲染的行
func (c *Controller) VisibleRows() []Record {
	rows := make([]Record, 0, len(c.records))
	for _, r := range c.records {
		if c.matches(r) {
			rows = append(rows, r)
		}
	}

	if len(c.sortRules) > 0 {
		sort.SliceStable(rows, func(i, j int) bool {
			for _, rule := range c.sortRules {
				cmp := compareValues(rows[i][rule.Field], rows[j][rule.Field])
				if cmp == 0 {
					continue
				}
				if rule.Desc {
					return cmp > 0
				}
				return cmp < 0
			}
			return false
		})
	}

	return rows
}

// compareValues 宽松比较：同为字符串按不分大小写字典序，数值按大小，其余转字符串
func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(strings.ToLower(av), strings.ToLower(bv))
		}
	case float64:
		if bv, ok := toFloat(b); ok {
			av2 := av
			switch {
			case av2 < bv:
				return -1
			case av2 > bv:
				return 1
			}
			return 0
		}
	case int:
		if bv, ok := toFloat(b); ok {
			return compareValues(float64(av), bv)
		}
	case int64:
		if bv, ok := toFloat(b); ok {
			return compareValues(float64(av), bv)
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// ==================== 勾选 ====================

// ToggleRowSelected 勾选/取消一行；删除进行中时整组勾选控件禁用
func (c *Controller) ToggleRowSelected(id string, selected bool) {
	if c.deleting {
		return
	}
	found := false
	for _, r := range c.records {
		if r.ID() == id {
			found = true
			break
		}
	}
	if !found {
		return
	}
	if selected {
		c.selected[id] = true
	} else {
		delete(c.selected, id)
	}
}

// ToggleAllOnPageSelected 全选/清空当前页 (过滤后的可见行)
func (c *Controller) ToggleAllOnPageSelected(selected bool) {
	if c.deleting {
		return
	}
	for _, r := range c.VisibleRows() {
		if selected {
			c.selected[r.ID()] = true
		} else {
			delete(c.selected, r.ID())
		}
	}
}

// IsRowSelected 行是否勾选
func (c *Controller) IsRowSelected(id string) bool {
	return c.selected[id]
}

// AllOnPageSelected 表头全选框状态：只看当前页的可见行
func (c *Controller) AllOnPageSelected() bool {
	rows := c.VisibleRows()
	if len(rows) == 0 {
		return false
	}
	for _, r := range rows {
		if !c.selected[r.ID()] {
			return false
		}
	}
	return true
}

// SelectedVisibleIDs 勾选 ∩ 通过过滤，按可见行顺序返回
// 批量删除只对这个集合生效：勾了但被过滤掉的行不会被误删
func (c *Controller) SelectedVisibleIDs() []string {
	var ids []string
	for _, r := range c.VisibleRows() {
		if c.selected[r.ID()] {
			ids = append(ids, r.ID())
		}
	}
	return ids
}

// SelectionSummary "n of m row(s) selected" 的 n / m
func (c *Controller) SelectionSummary() (selected, visible int) {
	return len(c.SelectedVisibleIDs()), len(c.VisibleRows())
}

// ==================== 分页 ====================

// PageCount 总页数 (由服务端 totalCount 推导，本地不数)
func (c *Controller) PageCount() int {
	if c.totalCount == 0 {
		return 0
	}
	return int(math.Ceil(float64(c.totalCount) / float64(c.pageSize)))
}

// PageIndex 当前页号 (0 起)
func (c *Controller) PageIndex() int { return c.pageIndex }

// PageSize 每页行数
func (c *Controller) PageSize() int { return c.pageSize }

// CanPreviousPage 上一页按钮可用性
func (c *Controller) CanPreviousPage() bool {
	return c.pageIndex > 0 && !c.deleting
}

// CanNextPage 下一页按钮可用性
func (c *Controller) CanNextPage() bool {
	return c.pageIndex < c.PageCount()-1 && !c.deleting
}

// RequestPage 翻页 intent；越界直接不理
func (c *Controller) RequestPage(pageIndex int) bool {
	if c.deleting {
		return false
	}
	if pageIndex < 0 || pageIndex >= c.PageCount() {
		return false
	}
	c.pageIndex = pageIndex
	c.SetLoading()
	c.host.FetchPage(c.pageIndex, c.pageSize)
	return true
}

// RequestPageSize 改每页行数；页密度变了当前偏移就失效，回第 0 页
func (c *Controller) RequestPageSize(pageSize int) bool {
	if c.deleting || !pageSizeOptions[pageSize] {
		return false
	}
	c.pageSize = pageSize
	c.pageIndex = 0
	c.SetLoading()
	c.host.FetchPage(0, pageSize)
	return true
}

// ==================== 删除 ====================

// Deleting 删除是否进行中 (所有破坏性/勾选控件据此禁用)
func (c *Controller) Deleting() bool { return c.deleting }

// RequestDeleteOne 行内删除，先进确认弹窗
func (c *Controller) RequestDeleteOne(id string) bool {
	if c.deleting {
		return false
	}
	for _, r := range c.records {
		if r.ID() == id {
			c.pending = &pendingDelete{ids: []string{id}}
			return true
		}
	}
	return false
}

// RequestDeleteSelected 批量删除，只取勾选且过滤后可见的行
// 集合为空时按钮本来就该是禁用态，直接拒绝
func (c *Controller) RequestDeleteSelected() bool {
	if c.deleting {
		return false
	}
	ids := c.SelectedVisibleIDs()
	if len(ids) == 0 {
		return false
	}
	c.pending = &pendingDelete{ids: ids}
	return true
}

// CanDeleteSelected 批量删除按钮可用性
func (c *Controller) CanDeleteSelected() bool {
	return !c.deleting && len(c.SelectedVisibleIDs()) > 0
}

// ConfirmPending 确认弹窗里点了确认，真正把删除 intent 发给宿主
func (c *Controller) ConfirmPending() bool {
	if c.pending == nil || c.deleting {
		return false
	}
	ids := c.pending.ids
	c.pending = nil
	c.deleting = true

	if len(ids) == 1 {
		c.host.DeleteOne(ids[0])
	} else {
		c.host.DeleteMany(ids)
	}
	return true
}

// CancelPending 确认弹窗里点了取消，所有状态原样保留
func (c *Controller) CancelPending() {
	c.pending = nil
}

// HasPending 是否有待确认的删除
func (c *Controller) HasPending() bool {
	return c.pending != nil
}

// FinishDelete 宿主在远程删除结束后回调 (成功失败都要调)
// 成功路径宿主随后会重拉当前页触发 Reload
func (c *Controller) FinishDelete() {
	c.deleting = false
}

// ==================== 表体与行为 ====================

// Body 表体状态，互斥且按 loading > error > 数据 的优先级判定
func (c *Controller) Body() BodyState {
	switch {
	case c.loading:
		return BodyLoading
	case c.loadError != "":
		return BodyError
	case len(c.VisibleRows()) == 0:
		return BodyEmpty
	}
	return BodyPopulated
}

// LoadError 列表加载失败信息
func (c *Controller) LoadError() string { return c.loadError }

// EditTarget 编辑跳转目标路径；没配 editPath 返回空
func (c *Controller) EditTarget(id string) string {
	if c.editPath == "" {
		return ""
	}
	return c.editPath + "/" + id
}
