package client

import (
	"errors"

	"pharmacy_admin_v1_202608/pkg/dataview"
)

// ==================== 表格宿主 ====================

// TableHost 把一种资源的列表/删除接口适配成 dataview.Host
// 控制器发 intent，这里打接口，再把结果灌回控制器。
// toast 通过 Notify 回调抛出，调用方决定怎么展示。
type TableHost struct {
	api      *Client
	resource string
	ctl      *dataview.Controller

	// Notify 操作结果提示 (成功或失败的 toast 文案)
	Notify func(message string, isError bool)
}

// NewTableHost 创建宿主；构造后必须 Bind 控制器再使用
func NewTableHost(api *Client, resource string) *TableHost {
	return &TableHost{api: api, resource: resource}
}

// Bind 绑定控制器 (宿主和控制器互相引用，只能分两步建)
func (h *TableHost) Bind(ctl *dataview.Controller) {
	h.ctl = ctl
}

// Refresh 首次加载或手动刷新当前页
func (h *TableHost) Refresh() {
	h.ctl.SetLoading()
	h.FetchPage(h.ctl.PageIndex(), h.ctl.PageSize())
}

// FetchPage 拉一页数据灌回控制器；失败时表体进错误态
func (h *TableHost) FetchPage(pageIndex, pageSize int) {
	result, err := h.api.List(h.resource, pageSize, pageIndex*pageSize)
	if err != nil {
		h.ctl.SetError(loadErrorMessage(err))
		return
	}
	h.ctl.Reload(result.Records, result.Total)
}

// DeleteOne 单条删除；成功才重拉当前页，失败只提示、已加载数据原样保留
func (h *TableHost) DeleteOne(id string) {
	message, err := h.api.Delete(h.resource, id)
	h.ctl.FinishDelete()
	if err != nil {
		h.notify(err.Error(), true)
		return
	}
	h.notify(message, false)
	h.Refresh()
}

// DeleteMany 批量删除，语义同 DeleteOne
func (h *TableHost) DeleteMany(ids []string) {
	message, err := h.api.DeleteMany(h.resource, ids)
	h.ctl.FinishDelete()
	if err != nil {
		h.notify(err.Error(), true)
		return
	}
	h.notify(message, false)
	h.Refresh()
}

func (h *TableHost) notify(message string, isError bool) {
	if h.Notify != nil {
		h.Notify(message, isError)
	}
}

// loadErrorMessage 加载失败的表体文案；会话过期单独措辞
func loadErrorMessage(err error) string {
	if errors.Is(err, ErrSessionExpired) {
		return ErrSessionExpired.Error()
	}
	return "Failed to load data: " + err.Error()
}
