// Package feature 提供目录快照构建期使用的特征工程组件：
//
//   - Vectorizer：固定词表（停用词过滤、按文档频率截断）的 TF-IDF 内容向量
//   - OneHotEncoder：字典序标签全集上的独热编码
//   - MinMaxNormalizer：按列 Min-Max 归一化
//   - SimilarityMatrix：N×N 余弦相似度矩阵
//
// 所有结构都只在构建期写入，之后可被任意多个请求并发读取。
package feature
