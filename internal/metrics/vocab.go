// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metrics

// datasetVocab lists benchmark dataset names matched case-insensitively
// as substrings of the paper text.
var datasetVocab = []string{
	"imagenet",
	"coco",
	"mnist",
	"cifar-10",
	"cifar-100",
	"cifar10",
	"cifar100",
	"squad",
	"glue",
	"wmt",
	"pubmed",
	"kitti",
	"lfw",
	"celeba",
	"fer2013",
	"openimages",
	"pascal voc",
	"voc",
	"cityscapes",
	"ade20k",
}

// modelVocab lists model and architecture names matched the same way.
var modelVocab = []string{
	"resnet",
	"vgg",
	"inception",
	"mobilenet",
	"efficientnet",
	"yolo",
	"faster r-cnn",
	"bert",
	"gpt",
	"transformer",
	"lstm",
	"gru",
	"cnn",
	"rnn",
	"gan",
	"vae",
	"densenet",
	"alexnet",
	"lenet",
	"xception",
	"nasnet",
}
