package i18n

// Message catalog keys.
const (
	KeySaveSuccess           = "core.theme.development.save_success"
	KeySaveFailed            = "core.theme.development.save_failed"
	KeyFileLoadFailed        = "core.theme.development.file_load_failed"
	KeyFileSaveSuccess       = "core.theme.development.file_save_success"
	KeyFileSaveFailed        = "core.theme.development.file_save_failed"
	KeyFileChanged           = "core.theme.development.file_changed"
	KeyConfigChanged         = "core.theme.development.config_changed"
	KeyPreviewGenerated      = "core.theme.development.preview_generated"
	KeyPreviewGenerateFailed = "core.theme.development.preview_generate_failed"
	KeyAutosaveCompleted     = "core.theme.development.autosave_completed"

	KeyNameRequired        = "core.theme.development.validation.name_required"
	KeyDisplayNameRequired = "core.theme.development.validation.display_name_required"
	KeyVersionFormat       = "core.theme.development.validation.version_format"
	KeyColorFormat         = "core.theme.development.validation.color_format"
	KeyDescriptionShort    = "core.theme.development.validation.description_short"
	KeyValidationSuccess   = "core.theme.development.validation.success"
	KeyValidationFailed    = "core.theme.development.validation.failed"
	KeyValidationError     = "core.theme.development.validation.error"
	KeyHTMLStructure       = "core.theme.development.validation.html_structure"
	KeyCSSSyntax           = "core.theme.development.validation.css_syntax"
	KeyJSSyntax            = "core.theme.development.validation.js_syntax"
	KeyYAMLSyntax          = "core.theme.development.validation.yaml_syntax"

	KeyDescriptorAPIVersion  = "core.theme.development.descriptor.api_version"
	KeyDescriptorKind        = "core.theme.development.descriptor.kind"
	KeyDescriptorName        = "core.theme.development.descriptor.name_required"
	KeyDescriptorRequires    = "core.theme.development.descriptor.requires_invalid"
	KeyDescriptorUnsatisfied = "core.theme.development.descriptor.requires_unsatisfied"
)

var english = map[string]string{
	KeySaveSuccess:           "Theme configuration saved",
	KeySaveFailed:            "Failed to save theme configuration",
	KeyFileLoadFailed:        "Failed to load file content",
	KeyFileSaveSuccess:       "File saved",
	KeyFileSaveFailed:        "Failed to save file",
	KeyFileChanged:           "File %s changed",
	KeyConfigChanged:         "Theme configuration changed",
	KeyPreviewGenerated:      "Preview updated",
	KeyPreviewGenerateFailed: "Failed to generate preview",
	KeyAutosaveCompleted:     "Autosaved %d item(s)",

	KeyNameRequired:        "Theme name is required",
	KeyDisplayNameRequired: "Display name is required",
	KeyVersionFormat:       "Version must be in x.y.z format",
	KeyColorFormat:         "Color %s must be a valid hex color code",
	KeyDescriptionShort:    "Description is shorter than 10 characters",
	KeyValidationSuccess:   "Validation passed",
	KeyValidationFailed:    "Validation failed",
	KeyValidationError:     "Validation could not be completed",
	KeyHTMLStructure:       "HTML document is missing the <html> element",
	KeyCSSSyntax:           "CSS has an unclosed brace",
	KeyJSSyntax:            "JavaScript function is missing a body",
	KeyYAMLSyntax:          "YAML mapping is missing a space after the colon",

	KeyDescriptorAPIVersion:  "apiVersion must be %s",
	KeyDescriptorKind:        "kind must be %s",
	KeyDescriptorName:        "metadata.name is required",
	KeyDescriptorRequires:    "spec.requires %q is not a valid version constraint",
	KeyDescriptorUnsatisfied: "Platform version %s does not satisfy spec.requires %s",
}

var chinese = map[string]string{
	KeySaveSuccess:           "主题配置保存成功",
	KeySaveFailed:            "主题配置保存失败",
	KeyFileLoadFailed:        "文件内容加载失败",
	KeyFileSaveSuccess:       "文件保存成功",
	KeyFileSaveFailed:        "文件保存失败",
	KeyFileChanged:           "文件 %s 已变更",
	KeyConfigChanged:         "主题配置已变更",
	KeyPreviewGenerated:      "预览已更新",
	KeyPreviewGenerateFailed: "预览生成失败",
	KeyAutosaveCompleted:     "已自动保存 %d 项",

	KeyNameRequired:        "主题名称不能为空",
	KeyDisplayNameRequired: "显示名称不能为空",
	KeyVersionFormat:       "版本号格式必须为 x.y.z",
	KeyColorFormat:         "颜色 %s 必须为有效的十六进制颜色代码",
	KeyDescriptionShort:    "主题描述少于 10 个字符",
	KeyValidationSuccess:   "验证通过",
	KeyValidationFailed:    "验证失败",
	KeyValidationError:     "验证过程出错",
	KeyHTMLStructure:       "HTML 文档缺少 <html> 元素",
	KeyCSSSyntax:           "CSS 存在未闭合的大括号",
	KeyJSSyntax:            "JavaScript 函数缺少函数体",
	KeyYAMLSyntax:          "YAML 冒号后缺少空格",

	KeyDescriptorAPIVersion:  "apiVersion 必须为 %s",
	KeyDescriptorKind:        "kind 必须为 %s",
	KeyDescriptorName:        "metadata.name 不能为空",
	KeyDescriptorRequires:    "spec.requires %q 不是有效的版本约束",
	KeyDescriptorUnsatisfied: "平台版本 %s 不满足 spec.requires %s",
}
