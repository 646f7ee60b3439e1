// Package location 提供城市/省份的归一化索引与模糊匹配。
//
// 索引键统一为 trim + lowercase；空键（缺失城市/省份的商品）单独成桶，
// 但永远不会作为模糊匹配的目标。模糊匹配按字典序遍历索引键，相似度相同
// 时保留字典序最小的键，保证多次运行结果一致。
package location
