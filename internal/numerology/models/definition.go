package models

// Definition is a rule-set as stored in configuration: loosely typed, with
// optional policy fields left as pointers so that absence can be told apart
// from an explicit false. The registry compiles it into a RuleSet.
type Definition struct {
	Name            string         `json:"name" yaml:"name" validate:"required"`
	CharMap         map[string]int `json:"char_map" yaml:"char_map" validate:"required,min=1,dive,keys,required,endkeys,gt=0"`
	MasterNumbers   []int          `json:"master_numbers,omitempty" yaml:"master_numbers,omitempty" validate:"omitempty,dive,gte=10"`
	KeepMaster      *bool          `json:"keep_master,omitempty" yaml:"keep_master,omitempty"`
	ReduceMaster    *bool          `json:"reduce_master,omitempty" yaml:"reduce_master,omitempty"`
	Vowels          []string       `json:"vowels,omitempty" yaml:"vowels,omitempty" validate:"omitempty,dive,required"`
	IncludeYAsVowel *bool          `json:"include_y_as_vowel,omitempty" yaml:"include_y_as_vowel,omitempty"`
	Normalization   string         `json:"normalization,omitempty" yaml:"normalization,omitempty" validate:"omitempty,oneof=ascii_fold ascii none"`
	ReduceMethod    string         `json:"reduce_method,omitempty" yaml:"reduce_method,omitempty" validate:"omitempty,oneof=classic digital_root"`
}

// SystemInfo is one entry of the caller-facing system listing.
type SystemInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
