// Package catalog 管理目录快照：从 Source 加载商品，构建不可变的 Snapshot
// （城市/省份索引、内容向量器、特征相似度矩阵），并通过 Holder 原子替换。
//
// 快照内的一切派生结构都只由商品列表决定，目录变化时整体重建，从不增量修改。
package catalog
